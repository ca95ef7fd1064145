// Package prompt asks the user yes/no and free-text questions. Callers depend
// on the Confirmer interface so tests can script the answers.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer answers interactive questions.
type Confirmer interface {
	// Confirm asks a yes/no question; def is returned for an empty answer.
	Confirm(question string, def bool) (bool, error)
	// Ask asks a free-text question and returns the trimmed answer.
	Ask(question string) (string, error)
}

// Terminal reads answers line by line from r and writes questions to w.
type Terminal struct {
	r *bufio.Reader
	w io.Writer

	// Echo writes every answer read back to w, so a transcript of piped
	// input reads the same as an interactive session.
	Echo bool
}

// NewTerminal returns a Terminal confirmer over r and w.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{r: bufio.NewReader(r), w: w}
}

// Confirm shows "question [y/N]" (or "[Y/n]" when def is true) and repeats
// until it reads y, yes, n, no or an empty line. End of input answers def.
func (t *Terminal) Confirm(question string, def bool) (bool, error) {
	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}
	for {
		fmt.Fprintf(t.w, "%s %s ", question, suffix)
		line, err := t.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(t.w)
				return def, nil
			}
			return false, fmt.Errorf("reading answer: %w", err)
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(t.w, "Please answer 'y' or 'n'.")
	}
}

// Ask shows "question " and returns the trimmed reply. End of input is an
// empty reply.
func (t *Terminal) Ask(question string) (string, error) {
	fmt.Fprintf(t.w, "%s ", question)
	line, err := t.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.w)
			return "", nil
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return line, nil
}

// readLine returns the next trimmed line. A final line without a newline is
// returned normally; io.EOF is only reported when nothing was read.
func (t *Terminal) readLine() (string, error) {
	line, err := t.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSpace(line)
	if t.Echo {
		fmt.Fprintln(t.w, line)
	}
	return line, nil
}

// Defaults answers every confirmation with its default and every question
// with an empty reply. It backs --non-interactive.
type Defaults struct {
	// W, when set, receives the questions together with the chosen answers.
	W io.Writer
}

// Confirm returns def.
func (d Defaults) Confirm(question string, def bool) (bool, error) {
	if d.W != nil {
		answer := "n"
		if def {
			answer = "y"
		}
		fmt.Fprintf(d.W, "%s %s (non-interactive)\n", question, answer)
	}
	return def, nil
}

// Ask returns "".
func (d Defaults) Ask(question string) (string, error) {
	if d.W != nil {
		fmt.Fprintf(d.W, "%s (non-interactive)\n", question)
	}
	return "", nil
}
