// Package validate evaluates declarative field rules over submitted
// form values. Rules are plain data; evaluation is non-short-circuiting
// so every violation is collected, and the result is deterministic for
// a given input.
package validate

import (
	"fmt"
	"net/mail"
	"unicode/utf8"
)

// Rule checks a single constraint on a named field and returns a
// violation message, or "" when the value passes.
type Rule struct {
	Field string
	Check func(value string) string
}

// Evaluate runs every rule against values and aggregates violations
// into a field -> ordered messages mapping. The mapping is empty when
// all rules pass.
func Evaluate(values map[string]string, rules []Rule) map[string][]string {
	violations := map[string][]string{}
	for _, rule := range rules {
		if msg := rule.Check(values[rule.Field]); msg != "" {
			violations[rule.Field] = append(violations[rule.Field], msg)
		}
	}
	return violations
}

// Required fails on empty values.
func Required(field string) Rule {
	return Rule{Field: field, Check: func(v string) string {
		if v == "" {
			return fmt.Sprintf("The %s field is required.", field)
		}
		return ""
	}}
}

// Max fails on values longer than n characters. Empty values pass so a
// single missing field only reports the required violation.
func Max(field string, n int) Rule {
	return Rule{Field: field, Check: func(v string) string {
		if v != "" && utf8.RuneCountInString(v) > n {
			return fmt.Sprintf("The %s may not be greater than %d characters.", field, n)
		}
		return ""
	}}
}

// Min fails on non-empty values shorter than n characters.
func Min(field string, n int) Rule {
	return Rule{Field: field, Check: func(v string) string {
		if v != "" && utf8.RuneCountInString(v) < n {
			return fmt.Sprintf("The %s must be at least %d characters.", field, n)
		}
		return ""
	}}
}

// Email fails on values that do not parse as an address.
func Email(field string) Rule {
	return Rule{Field: field, Check: func(v string) string {
		if v == "" {
			return ""
		}
		if addr, err := mail.ParseAddress(v); err != nil || addr.Address != v {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
		return ""
	}}
}

// Confirmed fails when the field does not equal its confirmation value.
func Confirmed(field string, confirmation string) Rule {
	return Rule{Field: field, Check: func(v string) string {
		if v != confirmation {
			return fmt.Sprintf("The %s confirmation does not match.", field)
		}
		return ""
	}}
}

// Accepted fails unless the value is the literal "true".
func Accepted(field string) Rule {
	return Rule{Field: field, Check: func(v string) string {
		if v != "true" {
			return fmt.Sprintf("The %s must be accepted.", field)
		}
		return ""
	}}
}
