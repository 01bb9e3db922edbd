// Package qbank converts question-bank IDs into flashcard tag search
// queries and recovers IDs from card tags.
//
// Every function in this package is pure: no I/O, no shared mutable state.
// Callers may invoke them concurrently without coordination.
package qbank

import (
	"fmt"
	"strings"
)

// Bank identifies the question database an ID belongs to.
type Bank string

const (
	// UWorld IDs are numeric
	UWorld Bank = "UWorld"
	// AMBOSS IDs are alphanumeric and may contain '-' and '_'
	AMBOSS Bank = "AMBOSS"
	// COMLEX IDs are numeric and live under the UWorld tag tree
	COMLEX Bank = "COMLEX"
)

// Step is the USMLE exam tier selecting a tag namespace.
type Step string

const (
	Step1 Step = "Step1"
	Step2 Step = "Step2"
	Step3 Step = "Step3"
)

// Banks returns all supported banks in display order.
func Banks() []Bank {
	return []Bank{UWorld, AMBOSS, COMLEX}
}

// Steps returns all steps in display order.
func Steps() []Step {
	return []Step{Step1, Step2, Step3}
}

// Label returns the human-readable form of a step ("Step 1").
func (s Step) Label() string {
	return strings.Replace(string(s), "Step", "Step ", 1)
}

// ParseBank parses a bank name case-insensitively.
func ParseBank(s string) (Bank, error) {
	for _, b := range Banks() {
		if strings.EqualFold(strings.TrimSpace(s), string(b)) {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown bank %q (must be UWorld, AMBOSS or COMLEX)", s)
}

// ParseStep accepts "Step2", "step 2", "STEP_2" or just "2".
func ParseStep(s string) (Step, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(norm)
	norm = strings.TrimPrefix(norm, "step")
	for _, st := range Steps() {
		if norm == strings.TrimPrefix(string(st), "Step") {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown step %q (must be Step1, Step2 or Step3)", s)
}

// PatternKey identifies a template by bank and step.
type PatternKey struct {
	Bank Bank
	Step Step
}

// String renders the key as "Bank_Step", the form used in override maps.
func (k PatternKey) String() string {
	return string(k.Bank) + "_" + string(k.Step)
}

// ParsePatternKey parses a "Bank_Step" key.
func ParsePatternKey(s string) (PatternKey, error) {
	bank, step, ok := strings.Cut(s, "_")
	if !ok {
		return PatternKey{}, fmt.Errorf("invalid pattern key %q (expected Bank_Step)", s)
	}
	b, err := ParseBank(bank)
	if err != nil {
		return PatternKey{}, err
	}
	st, err := ParseStep(step)
	if err != nil {
		return PatternKey{}, err
	}
	return PatternKey{Bank: b, Step: st}, nil
}

// PatternOverrides maps PatternKey.String() to a user-supplied template.
// Missing and empty entries fall back to the built-in defaults.
type PatternOverrides map[string]string
