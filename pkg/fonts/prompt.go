package fonts

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrSelectionCancelled is returned when the user aborts the checklist.
var ErrSelectionCancelled = errors.New("font selection cancelled")

// Selector asks the user which fonts to keep installed.
type Selector interface {
	// Select shows options with the entries at preselected already checked and
	// returns the confirmed option values.
	Select(options []string, preselected []int) ([]string, error)
}

// SurveySelector renders a terminal checklist.
type SurveySelector struct {
	Message  string
	PageSize int
}

func NewSurveySelector() *SurveySelector {
	return &SurveySelector{
		Message:  "Select fonts to install",
		PageSize: 20,
	}
}

func (s *SurveySelector) Select(options []string, preselected []int) ([]string, error) {
	prompt := &survey.MultiSelect{
		Message: s.Message,
		Options: options,
		Default: preselected,
	}

	var chosen []string
	if err := survey.AskOne(prompt, &chosen, survey.WithPageSize(s.PageSize)); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil, ErrSelectionCancelled
		}
		return nil, fmt.Errorf("showing font selection: %w", err)
	}
	return chosen, nil
}
