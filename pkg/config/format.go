package config

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "li-block-indent"
	RuleFormatID       RuleFormat = "id"       // "MDI001"
	RuleFormatCombined RuleFormat = "combined" // "MDI001/li-block-indent"
)

// RuleFormats lists the accepted rule formats.
func RuleFormats() []RuleFormat {
	return []RuleFormat{RuleFormatName, RuleFormatID, RuleFormatCombined}
}

// IsValid returns true if the rule format is supported.
func (f RuleFormat) IsValid() bool {
	switch f {
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return true
	default:
		return false
	}
}

// Label renders a rule identifier. Unknown formats render the name; a rule
// without a name always renders its ID.
func (f RuleFormat) Label(id, name string) string {
	switch {
	case name == "", f == RuleFormatID:
		return id
	case f == RuleFormatCombined:
		return id + "/" + name
	default:
		return name
	}
}

// FormatRuleID renders a rule identifier in the given format.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	return format.Label(ruleID, ruleName)
}
