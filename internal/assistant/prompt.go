package assistant

import (
	"os"
	"strings"

	"github.com/agentx-labs/agentboot/internal/errors"
	"github.com/agentx-labs/agentboot/internal/platform"
)

// DefaultPrompt is used when no prompt file exists.
const DefaultPrompt = `Update AGENTS.md so it conforms to AGENTS_STRUCTURE.md.
- Only edit AGENTS.md (do not touch other files).
- Replace outdated content and add new information as needed.
- Keep it concise and bullet-based. If needed, make it more concise.`

// LoadPrompt returns the trimmed contents of path, or DefaultPrompt when the
// file does not exist. The two are never merged. A file that exists but is
// blank is an E_CONFIG error.
func LoadPrompt(path string) (string, error) {
	if path == "" {
		return DefaultPrompt, nil
	}
	data, err := os.ReadFile(platform.ExpandHome(path))
	if os.IsNotExist(err) {
		return DefaultPrompt, nil
	}
	if err != nil {
		return "", errors.Wrap(errors.EConfig, "reading prompt file "+path, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.Newf(errors.EConfig, "Prompt file %s is empty", path)
	}
	return text, nil
}
