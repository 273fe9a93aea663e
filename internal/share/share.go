// package share hands result text to the host platform: the clipboard
// first, falling back to plain output when no clipboard is available.
package share

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
)

// copyFunc is swapped out in tests; clipboard access needs a display server.
var copyFunc = clipboard.WriteAll

// Copy writes text to the system clipboard.
func Copy(text string) error {
	if err := copyFunc(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// Share delivers text to the user: clipboard when possible, otherwise the
// text is printed to out so it can be shared by hand. Clipboard failures
// are logged, never surfaced as errors.
func Share(logger *log.Logger, out io.Writer, text string) {
	if err := Copy(text); err == nil {
		fmt.Fprintln(out, "copied to clipboard")
		return
	} else if logger != nil {
		logger.Warn("clipboard unavailable, printing instead", "err", err)
	}

	fmt.Fprintln(out, text)
}
