package tui

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
)

// ErrAborted is returned when the user declines the final confirmation.
var ErrAborted = errors.New("aborted")

const enterManually = "enter a path"

// Answers holds the inputs collected by the wizard.
type Answers struct {
	Source      string
	Destination string
	Move        bool
	Overwrite   bool
	Backup      bool
}

// RunWizard walks the user through building one operation. recent, when
// non-empty, is offered as source suggestions (most recent first).
func RunWizard(recent []string) (*Answers, error) {
	source, err := askSource(recent)
	if err != nil {
		return nil, err
	}

	destination, err := pterm.DefaultInteractiveTextInput.Show("Destination path")
	if err != nil {
		return nil, fmt.Errorf("reading destination: %w", err)
	}

	mode, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{"copy (keep source)", "move (remove source)"}).
		Show("What should happen to the source?")
	if err != nil {
		return nil, fmt.Errorf("reading mode: %w", err)
	}

	conflict, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{"fail", "overwrite", "backup"}).
		Show("If the destination already exists")
	if err != nil {
		return nil, fmt.Errorf("reading conflict policy: %w", err)
	}

	a := &Answers{
		Source:      source,
		Destination: destination,
		Move:        mode == "move (remove source)",
		Overwrite:   conflict == "overwrite",
		Backup:      conflict == "backup",
	}

	ok, err := pterm.DefaultInteractiveConfirm.
		Show(fmt.Sprintf("%s -> %s, proceed?", a.Source, a.Destination))
	if err != nil {
		return nil, fmt.Errorf("reading confirmation: %w", err)
	}
	if !ok {
		return nil, ErrAborted
	}
	return a, nil
}

func askSource(recent []string) (string, error) {
	if len(recent) == 0 {
		source, err := pterm.DefaultInteractiveTextInput.Show("Source path")
		if err != nil {
			return "", fmt.Errorf("reading source: %w", err)
		}
		return source, nil
	}

	options := append(append([]string{}, recent...), enterManually)
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		Show("Source path (recent first)")
	if err != nil {
		return "", fmt.Errorf("reading source: %w", err)
	}
	if choice != enterManually {
		return choice, nil
	}
	source, err := pterm.DefaultInteractiveTextInput.Show("Source path")
	if err != nil {
		return "", fmt.Errorf("reading source: %w", err)
	}
	return source, nil
}
