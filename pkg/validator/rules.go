package validator

import (
	"regexp"
	"unicode/utf8"
)

// Form is the raw input of a form, keyed by field name.
type Form map[string]string

// FieldErrors maps a field name to every message of the rules it violated.
type FieldErrors map[string][]string

// Rule is one predicate of a field together with the message shown when it fails.
type Rule struct {
	Message string
	Check   func(value string, form Form) bool
}

// RuleSet is an ordered, declarative set of rules per field.
// It holds no state besides the rules and is safe for concurrent use once built.
type RuleSet struct {
	fields []string
	rules  map[string][]Rule
}

func NewRuleSet() *RuleSet {
	return &RuleSet{rules: make(map[string][]Rule)}
}

// Field appends rules for name. Fields are evaluated in registration order.
func (rs *RuleSet) Field(name string, rules ...Rule) *RuleSet {
	if _, ok := rs.rules[name]; !ok {
		rs.fields = append(rs.fields, name)
	}
	rs.rules[name] = append(rs.rules[name], rules...)
	return rs
}

// Validate evaluates every rule against form and returns all violations,
// or nil when the form is valid.
func (rs *RuleSet) Validate(form Form) FieldErrors {
	var errs FieldErrors
	for _, field := range rs.fields {
		value := form[field]
		for _, rule := range rs.rules[field] {
			if rule.Check(value, form) {
				continue
			}
			if errs == nil {
				errs = make(FieldErrors)
			}
			errs[field] = append(errs[field], rule.Message)
		}
	}
	return errs
}

func MinLength(n int, message string) Rule {
	return Rule{Message: message, Check: func(value string, _ Form) bool {
		return utf8.RuneCountInString(value) >= n
	}}
}

func ExactLength(n int, message string) Rule {
	return Rule{Message: message, Check: func(value string, _ Form) bool {
		return utf8.RuneCountInString(value) == n
	}}
}

func Matches(pattern *regexp.Regexp, message string) Rule {
	return Rule{Message: message, Check: func(value string, _ Form) bool {
		return pattern.MatchString(value)
	}}
}

// EqualsField requires the value to equal another field of the same form.
func EqualsField(other, message string) Rule {
	return Rule{Message: message, Check: func(value string, form Form) bool {
		return value == form[other]
	}}
}

// Tag delegates to a validator tag expression, e.g. Tag(v, "email", "Invalid email address").
func Tag(cv *CustomValidator, tag, message string) Rule {
	return Rule{Message: message, Check: func(value string, _ Form) bool {
		return cv.Var(value, tag) == nil
	}}
}
