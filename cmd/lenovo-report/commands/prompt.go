package commands

import (
	"io"
	"strings"

	"github.com/tcnksm/go-input"
)

type action int

const (
	actionSave action = iota
	actionQuit
)

const (
	choiceSave = "Save"
	choiceQuit = "Quit"
)

// prompter asks its questions through one input.UI, the serial prompt and
// the menu share its buffered reader so neither swallows input meant for the
// other.
type prompter struct {
	ui *input.UI
}

func newPrompter(in io.Reader, out io.Writer) prompter {
	return prompter{ui: &input.UI{Reader: in, Writer: out}}
}

// Serial asks for the serial number, an empty answer (or closed input) yields
// "".
func (p prompter) Serial() (string, error) {
	serial, err := p.ui.Ask("Input the Serial:", &input.Options{
		HideDefault: true,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(serial), nil
}

// Action shows the report menu until it gets a valid answer. Save is the
// default, it is also picked when input is closed.
func (p prompter) Action() (action, error) {
	choice, err := p.ui.Select("Report Action:", []string{choiceSave, choiceQuit}, &input.Options{
		Default: choiceSave,
		Loop:    true,
	})
	if err != nil {
		return actionSave, err
	}
	if choice == choiceQuit {
		return actionQuit, nil
	}
	return actionSave, nil
}
