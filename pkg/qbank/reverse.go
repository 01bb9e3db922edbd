package qbank

import (
	"regexp"
	"strings"
)

// tagPattern recognizes one tag family and captures the ID.
type tagPattern struct {
	Name  string
	Bank  Bank
	Regex *regexp.Regexp
}

// tagPatterns are tried in order; the first match claims the tag.
var tagPatterns = []tagPattern{
	{
		Name:  "UWorld Step 1/2",
		Bank:  UWorld,
		Regex: regexp.MustCompile(`(?i)^(?:tag:)?#AK_Step[12]_v\d+::#UWorld::Step::(\d+)$`),
	},
	{
		Name:  "UWorld Step 3",
		Bank:  UWorld,
		Regex: regexp.MustCompile(`(?i)^(?:tag:)?#AK_Step3_v\d+::#UWorld::(\d+)$`),
	},
	{
		Name:  "AMBOSS",
		Bank:  AMBOSS,
		Regex: regexp.MustCompile(`(?i)^(?:tag:)?#AK_Step[12]_v\d+::#AMBOSS::([A-Za-z0-9_-]+)$`),
	},
	{
		Name:  "COMLEX",
		Bank:  COMLEX,
		Regex: regexp.MustCompile(`(?i)^(?:tag:)?#AK_Step[12]_v\d+::#UWorld::COMLEX::(\d+)$`),
	},
}

// ExtractIDsFromTags groups the IDs encoded in card tags by bank.
//
// The result always has an entry for every bank. IDs are unique per bank
// and keep first-seen order. Tags matching no known family are skipped.
func ExtractIDsFromTags(tags []string) map[Bank][]string {
	out := make(map[Bank][]string, len(Banks()))
	seen := make(map[Bank]map[string]bool, len(Banks()))
	for _, b := range Banks() {
		out[b] = []string{}
		seen[b] = map[string]bool{}
	}

	for _, tag := range tags {
		bank, id, ok := matchTag(strings.TrimSpace(tag))
		if !ok || seen[bank][id] {
			continue
		}
		seen[bank][id] = true
		out[bank] = append(out[bank], id)
	}
	return out
}

func matchTag(tag string) (Bank, string, bool) {
	for _, p := range tagPatterns {
		if m := p.Regex.FindStringSubmatch(tag); m != nil {
			return p.Bank, m[1], true
		}
	}
	return "", "", false
}

// SplitTags splits a card's space-separated tag field.
func SplitTags(field string) []string {
	return strings.Fields(field)
}
