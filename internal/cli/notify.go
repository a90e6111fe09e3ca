package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mwesthall/catalogctl/internal/cli/formatter"
)

// ToastNotifier prints controller notifications as styled one-liners, the
// terminal equivalent of the admin screen's toasts. Styling is skipped when
// stdout is not a terminal.
type ToastNotifier struct{}

// NewToastNotifier returns the notifier used by the catalogctl binary.
func NewToastNotifier() ToastNotifier {
	return ToastNotifier{}
}

func (ToastNotifier) Success(msg string) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println(formatter.StyleGreen.Render("✔ ") + msg)
		return
	}
	fmt.Println("OK: " + msg)
}

func (ToastNotifier) Error(msg string) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintln(os.Stderr, formatter.StyleRed.Render("✘ ")+msg)
		return
	}
	fmt.Fprintln(os.Stderr, "ERROR: "+msg)
}
