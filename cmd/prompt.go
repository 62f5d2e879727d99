package cmd

import "github.com/pterm/pterm"

// Prompter abstracts the interactive prompts so command logic stays
// testable without a terminal.
type Prompter interface {
	Input(label, initial string) (string, error)
	Password(label string) (string, error)
	Select(label string, options []string) (string, error)
	Confirm(label string) (bool, error)
}

// ptermPrompter is the terminal implementation.
type ptermPrompter struct{}

func (ptermPrompter) Input(label, initial string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithDefaultValue(initial).Show(label)
}

func (ptermPrompter) Password(label string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithMask("*").Show(label)
}

func (ptermPrompter) Select(label string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.WithOptions(options).Show(label)
}

func (ptermPrompter) Confirm(label string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.Show(label)
}
