package qbank

import "strings"

// Separator joins clauses into one disjunctive query.
const Separator = " OR "

// Status explains why a conversion produced what it did.
type Status int

const (
	// StatusOK means at least one clause was produced
	StatusOK Status = iota
	// StatusNoIDs means the input held no usable IDs
	StatusNoIDs
	// StatusUnsupported means (bank, step) has no template
	StatusUnsupported
)

// String returns a short description of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoIDs:
		return "no IDs found"
	case StatusUnsupported:
		return "unsupported step for bank"
	default:
		return "unknown"
	}
}

// Request is one conversion input.
type Request struct {
	Text      string
	Bank      Bank
	Step      Step
	Overrides PatternOverrides
}

// Result carries the query along with the pieces used to build it.
type Result struct {
	IDs      []string
	Template string
	Query    string
	Status   Status
}

// Convert runs extraction, resolution and joining for req.
func Convert(req Request) Result {
	ids := Extract(req.Text, req.Bank)
	if len(ids) == 0 {
		return Result{IDs: ids, Status: StatusNoIDs}
	}

	template, ok := Resolve(req.Step, req.Bank, req.Overrides)
	if !ok {
		return Result{IDs: ids, Status: StatusUnsupported}
	}

	clauses := make([]string, 0, len(ids))
	for _, id := range ids {
		clauses = append(clauses, strings.ReplaceAll(template, Placeholder, id))
	}

	return Result{
		IDs:      ids,
		Template: template,
		Query:    strings.Join(clauses, Separator),
		Status:   StatusOK,
	}
}

// Build returns the search query for text, or "" when there is nothing to
// search for (no IDs, or no template for the bank and step).
func Build(text string, step Step, bank Bank, overrides PatternOverrides) string {
	return Convert(Request{Text: text, Bank: bank, Step: step, Overrides: overrides}).Query
}
