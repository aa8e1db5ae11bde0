package cli

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// withSpinner shows a braille spinner on stderr while fn blocks. The
// spinner always stops before returning, including on error, and is
// skipped entirely when stderr is not a terminal.
func withSpinner(msg string, fn func() error) error {
	fi, err := os.Stderr.Stat()
	if err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return fn()
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + msg
	s.Start()
	defer s.Stop()

	return fn()
}
