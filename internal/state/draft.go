package state

import (
	"github.com/jonathan/empowr-credit/internal/types"
	"github.com/jonathan/empowr-credit/internal/wizard"
)

// Draft is the assessment as it stands between wizard steps.
type Draft struct {
	Wizard wizard.State          `json:"wizard"`
	Input  types.AssessmentInput `json:"input"`
	// IncomeEntered is set once the applicant has typed an annual income,
	// so a blank field can be told apart from an entered zero.
	IncomeEntered bool `json:"incomeEntered,omitempty"`
	// Errors holds inline field errors from the last failed submit.
	Errors map[string]string `json:"errors,omitempty"`
}

// NewDraft returns an empty draft on step 1.
func NewDraft() Draft {
	return Draft{Wizard: wizard.New()}
}
