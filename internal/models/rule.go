package models

// RuleCondition enumerates the supported cleanup rule conditions.
type RuleCondition string

const (
	ConditionOlderThan  RuleCondition = "older-than"
	ConditionLargerThan RuleCondition = "larger-than"
	ConditionContains   RuleCondition = "contains"
)

// Valid reports whether the condition is one of the recognized values.
func (c RuleCondition) Valid() bool {
	switch c {
	case ConditionOlderThan, ConditionLargerThan, ConditionContains:
		return true
	default:
		return false
	}
}

// Rule is a user-authored cleanup predicate. Pattern is a name substring, or
// a suffix match when it starts with a dot. Value is interpreted per
// condition: days for older-than, megabytes for larger-than, a literal
// substring for contains.
type Rule struct {
	Pattern   string        `json:"pattern"`
	Condition RuleCondition `json:"condition"`
	Value     string        `json:"value"`
	Enabled   bool          `json:"enabled"`
}
