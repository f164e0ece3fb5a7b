package prompt

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubPrompt(t *testing.T, interactive bool, run func(*huh.Form) error) {
	t.Helper()
	origInteractive, origRun := isInteractiveFunc, runFormFunc
	t.Cleanup(func() {
		isInteractiveFunc, runFormFunc = origInteractive, origRun
	})
	isInteractiveFunc = func() bool { return interactive }
	runFormFunc = run
}

func TestConfirmRequiresTerminal(t *testing.T) {
	stubPrompt(t, false, func(*huh.Form) error {
		t.Fatal("form must not run without a terminal")
		return nil
	})

	ok, err := HuhConfirmer{}.Confirm("Reinstall?")
	require.ErrorIs(t, err, ErrNotInteractive)
	assert.False(t, ok)
}

func TestConfirmAbort(t *testing.T) {
	stubPrompt(t, true, func(*huh.Form) error { return huh.ErrUserAborted })

	_, err := HuhConfirmer{}.Confirm("Reinstall?")
	require.ErrorIs(t, err, ErrAborted)
}

func TestConfirmRunError(t *testing.T) {
	boom := errors.New("tty gone")
	stubPrompt(t, true, func(*huh.Form) error { return boom })

	_, err := HuhConfirmer{}.Confirm("Reinstall?")
	require.ErrorIs(t, err, boom)
}

func TestConfirmDeclinedByDefault(t *testing.T) {
	stubPrompt(t, true, func(*huh.Form) error { return nil })

	ok, err := HuhConfirmer{}.Confirm("Reinstall?")
	require.NoError(t, err)
	assert.False(t, ok)
}
