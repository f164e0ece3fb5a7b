// Package prompt asks the operator to confirm destructive steps.
package prompt

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/nftdeploy/internal/messages"
	"github.com/conn-castle/nftdeploy/internal/terminal"
)

// ErrNotInteractive is returned when a confirmation is needed but no terminal is attached.
var ErrNotInteractive = errors.New(messages.PromptRequiresTerminal)

// ErrAborted is returned when the operator cancels the prompt.
var ErrAborted = errors.New(messages.PromptAborted)

var isInteractiveFunc = terminal.IsInteractive
var runFormFunc = func(form *huh.Form) error { return form.Run() }

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(title string) (bool, error)
}

// HuhConfirmer implements Confirmer with a huh form rendered on stderr.
type HuhConfirmer struct{}

// Confirm renders title with Yes/No options. It fails with ErrNotInteractive when
// stdin or stdout is not a terminal.
func (HuhConfirmer) Confirm(title string) (bool, error) {
	if !isInteractiveFunc() {
		return false, ErrNotInteractive
	}
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithProgramOptions(tea.WithOutput(os.Stderr))

	if err := runFormFunc(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrAborted
		}
		return false, err
	}
	return ok, nil
}
