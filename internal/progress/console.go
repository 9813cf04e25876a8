package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ConsoleSink writes progress as a single in-place updating line when the
// writer is a terminal, and quiet start/finish lines otherwise (so piped
// stderr is not flooded with carriage returns).
type ConsoleSink struct {
	w       io.Writer
	tty     bool
	success *color.Color
	failure *color.Color
}

// NewConsoleSink creates a console sink, detecting whether w is a terminal.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	s := &ConsoleSink{
		w:       w,
		tty:     tty,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
	if !tty {
		s.success.DisableColor()
		s.failure.DisableColor()
	}
	return s
}

func (s *ConsoleSink) Started(label string) {
	if !s.tty {
		fmt.Fprintf(s.w, "%s: started\n", label)
	}
}

func (s *ConsoleSink) Spinner(label string, elapsedSeconds float64, message string) {
	if !s.tty {
		return
	}
	fmt.Fprintf(s.w, "\r%s ... %.1fs", message, elapsedSeconds)
}

func (s *ConsoleSink) Progress(label string, percent float64, etaSeconds float64) {
	if !s.tty {
		return
	}
	if etaSeconds >= 0 {
		fmt.Fprintf(s.w, "\rffmpeg %3.0f%% eta %.1fs ", percent, etaSeconds)
	} else {
		fmt.Fprintf(s.w, "\rffmpeg %3.0f%%", percent)
	}
}

func (s *ConsoleSink) Finished(label string, ok bool, message string) {
	if s.tty {
		fmt.Fprint(s.w, "\r\033[K")
	}
	if ok {
		s.success.Fprintf(s.w, "%s: %s\n", label, message)
	} else {
		s.failure.Fprintf(s.w, "%s: %s\n", label, message)
	}
}
