package prompt

import "fmt"

// Scripted replays queued answers. Confirm consumes a bool from Confirms and
// Ask consumes a string from Answers; running out of either is an error.
// Asked records every question in order.
type Scripted struct {
	Confirms []bool
	Answers  []string
	Asked    []string
}

// Confirm returns the next queued confirmation.
func (s *Scripted) Confirm(question string, _ bool) (bool, error) {
	s.Asked = append(s.Asked, question)
	if len(s.Confirms) == 0 {
		return false, fmt.Errorf("unexpected confirmation %q", question)
	}
	v := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return v, nil
}

// Ask returns the next queued answer.
func (s *Scripted) Ask(question string) (string, error) {
	s.Asked = append(s.Asked, question)
	if len(s.Answers) == 0 {
		return "", fmt.Errorf("unexpected question %q", question)
	}
	v := s.Answers[0]
	s.Answers = s.Answers[1:]
	return v, nil
}
