// Package wizard implements the five-step assessment flow: a bounded step
// counter that moves one step at a time and only allows submission from the
// final review step.
package wizard

import (
	"errors"
	"fmt"
)

const (
	FirstStep = 1
	LastStep  = 5
)

// ErrSubmitNotAllowed is returned by Submit outside the review step.
var ErrSubmitNotAllowed = errors.New("assessment can only be submitted from the review step")

// Step describes one page of the wizard.
type Step struct {
	ID          int
	Slug        string
	Title       string
	Description string
}

// Steps lists the wizard pages in order.
var Steps = []Step{
	{ID: 1, Slug: "personal", Title: "Personal Info", Description: "Basic personal details"},
	{ID: 2, Slug: "address", Title: "Address", Description: "Current residence information"},
	{ID: 3, Slug: "employment", Title: "Employment", Description: "Employment and income details"},
	{ID: 4, Slug: "financial", Title: "Financial", Description: "Financial obligations and assets"},
	{ID: 5, Slug: "review", Title: "Review", Description: "Review and submit"},
}

// State is the wizard position. The zero value is normalized to step 1.
type State struct {
	CurrentStep int `json:"currentStep"`
}

// New returns a wizard positioned on the first step.
func New() State {
	return State{CurrentStep: FirstStep}
}

// Step returns the current step, normalizing out-of-range values.
func (s State) Step() int {
	switch {
	case s.CurrentStep < FirstStep:
		return FirstStep
	case s.CurrentStep > LastStep:
		return LastStep
	default:
		return s.CurrentStep
	}
}

// Advance moves forward one step unless already on the last one.
func (s *State) Advance() {
	if step := s.Step(); step < LastStep {
		s.CurrentStep = step + 1
		return
	}
	s.CurrentStep = LastStep
}

// Retreat moves back one step unless already on the first one.
func (s *State) Retreat() {
	if step := s.Step(); step > FirstStep {
		s.CurrentStep = step - 1
		return
	}
	s.CurrentStep = FirstStep
}

// CanSubmit reports whether the wizard is on the review step.
func (s State) CanSubmit() bool {
	return s.Step() == LastStep
}

// Submit checks that submission is reachable from the current step.
func (s State) Submit() error {
	if !s.CanSubmit() {
		return fmt.Errorf("step %d: %w", s.Step(), ErrSubmitNotAllowed)
	}
	return nil
}

// IsFirst reports whether Retreat would be a no-op.
func (s State) IsFirst() bool {
	return s.Step() == FirstStep
}

// Current returns metadata for the current step.
func (s State) Current() Step {
	return Steps[s.Step()-1]
}

// Progress returns completion as a percentage: 0 on step 1, 100 on step 5.
func (s State) Progress() float64 {
	return float64(s.Step()-FirstStep) / float64(LastStep-FirstStep) * 100
}
