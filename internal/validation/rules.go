package validation

import (
	"fmt"
	"math"
	"regexp"
	"time"
)

// Rule is a closed validation tag. Using a typed enum instead of free-text
// tags means a misspelled rule is a compile error, not a silently skipped
// check.
type Rule uint8

const (
	Required Rule = iota + 1
	Email
	Phone
	Number
	Date
	Amount
	Password
)

// MaxAmount bounds every monetary field accepted by the gate.
const MaxAmount = 999_999_999

// RuleTable maps a record field (by its JSON name) to the ordered rules
// applied to it.
type RuleTable map[string][]Rule

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s()-]{7,20}$`)
)

func (r Rule) String() string {
	switch r {
	case Required:
		return "required"
	case Email:
		return "email"
	case Phone:
		return "phone"
	case Number:
		return "number"
	case Date:
		return "date"
	case Amount:
		return "amount"
	case Password:
		return "password"
	}
	return fmt.Sprintf("rule(%d)", uint8(r))
}

// check applies a single rule to a field value already decoded from JSON.
// Every predicate is pure: same input, same verdict.
func (r Rule) check(field string, value interface{}) (ok bool, message string) {
	switch r {
	case Required:
		if isEmpty(value) {
			return false, fmt.Sprintf("%s is required", field)
		}
	case Email:
		s, isString := value.(string)
		if !isString || !emailPattern.MatchString(s) {
			return false, fmt.Sprintf("%s must be a valid email address", field)
		}
	case Phone:
		s, isString := value.(string)
		if !isString || !phonePattern.MatchString(s) {
			return false, fmt.Sprintf("%s must be a valid phone number", field)
		}
	case Number:
		if _, isNumber := asFloat(value); !isNumber {
			return false, fmt.Sprintf("%s must be a number", field)
		}
	case Date:
		s, isString := value.(string)
		if !isString {
			return false, fmt.Sprintf("%s must be a date", field)
		}
		if _, err := time.Parse(time.DateOnly, s); err != nil {
			return false, fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", field)
		}
	case Amount:
		f, isNumber := asFloat(value)
		if !isNumber || math.IsNaN(f) || math.IsInf(f, 0) {
			return false, fmt.Sprintf("%s must be a finite amount", field)
		}
		if f < 0 || f > MaxAmount {
			return false, fmt.Sprintf("%s must be between 0 and %d", field, MaxAmount)
		}
	case Password:
		s, isString := value.(string)
		if !isString || len(s) < 8 {
			return false, fmt.Sprintf("%s must be at least 8 characters", field)
		}
	}
	return true, ""
}

func isEmpty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}

func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
