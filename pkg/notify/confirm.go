package notify

import (
	"errors"
	"strconv"

	"github.com/manifoldco/promptui"
)

// Confirmer asks the user a yes/no question before a destructive operation.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Always answers every question the same way.
type Always bool

func (a Always) Confirm(string) (bool, error) {
	return bool(a), nil
}

// Prompt asks on the terminal using promptui.
type Prompt struct {
	// Default is the answer used when the user just presses enter.
	Default bool
}

func (p Prompt) Confirm(question string) (bool, error) {
	validInput := "y/[n]"
	if p.Default {
		validInput = "[y]/n"
	}

	validate := func(input string) error {
		if input == "" {
			return nil
		}
		_, err := ParseBool(input)
		return err
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	prompt := promptui.Prompt{
		Label:     question + " " + validInput,
		Templates: templates,
		Validate:  validate,
	}

	result, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	if result == "" {
		return p.Default, nil
	}
	return ParseBool(result)
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
