package qbank

// Placeholder is the literal token replaced by each ID in a template.
const Placeholder = "{ID}"

// defaultPatterns holds the built-in templates. Combinations missing here
// (AMBOSS and COMLEX Step 3) have no valid query.
var defaultPatterns = map[PatternKey]string{
	{UWorld, Step1}: "tag:#AK_Step1_v12::#UWorld::Step::{ID}",
	{UWorld, Step2}: "tag:#AK_Step2_v12::#UWorld::Step::{ID}",
	{UWorld, Step3}: "tag:#AK_Step3_v12::#UWorld::{ID}",
	{AMBOSS, Step1}: "tag:#AK_Step1_v12::#AMBOSS::{ID}",
	{AMBOSS, Step2}: "tag:#AK_Step2_v12::#AMBOSS::{ID}",
	{COMLEX, Step1}: "tag:#AK_Step1_v12::#UWorld::COMLEX::{ID}",
	{COMLEX, Step2}: "tag:#AK_Step2_v12::#UWorld::COMLEX::{ID}",
}

// Resolve returns the template for (bank, step).
//
// A non-empty override wins; an empty override is treated as absent.
// ok is false when neither an override nor a default exists, which callers
// should treat as "nothing to search for" rather than a failure.
func Resolve(step Step, bank Bank, overrides PatternOverrides) (template string, ok bool) {
	key := PatternKey{Bank: bank, Step: step}
	if custom := overrides[key.String()]; custom != "" {
		return custom, true
	}
	template, ok = defaultPatterns[key]
	return template, ok
}

// DefaultPattern returns the built-in template for key.
func DefaultPattern(key PatternKey) (string, bool) {
	p, ok := defaultPatterns[key]
	return p, ok
}

// DefaultPatterns returns a copy of the built-in table keyed by "Bank_Step".
func DefaultPatterns() PatternOverrides {
	out := make(PatternOverrides, len(defaultPatterns))
	for k, v := range defaultPatterns {
		out[k.String()] = v
	}
	return out
}

// IsSupported reports whether (bank, step) has a built-in template.
func IsSupported(bank Bank, step Step) bool {
	_, ok := defaultPatterns[PatternKey{Bank: bank, Step: step}]
	return ok
}

// StepsFor lists the steps with a built-in template for bank.
func StepsFor(bank Bank) []Step {
	var steps []Step
	for _, s := range Steps() {
		if IsSupported(bank, s) {
			steps = append(steps, s)
		}
	}
	return steps
}

// AllPatternKeys lists every supported key in bank, then step order.
func AllPatternKeys() []PatternKey {
	var keys []PatternKey
	for _, b := range Banks() {
		for _, s := range StepsFor(b) {
			keys = append(keys, PatternKey{Bank: b, Step: s})
		}
	}
	return keys
}
