// Package validation is the gate every record passes through before it is
// persisted and again when it is read back, so out-of-band edits to the
// underlying store cannot leak malformed records into the application.
package validation

import (
	"sort"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Result is the outcome of validating one record against a rule table.
type Result struct {
	IsValid bool
	Errors  []string
}

// Validate applies the rule table to the record's JSON representation. It is
// side-effect free and deterministic. Non-required rules are skipped for
// absent or empty values, so optional fields validate only when present.
func Validate(record interface{}, table RuleTable) Result {
	fields, err := fieldMap(record)
	if err != nil {
		return Result{Errors: []string{"record is not serializable"}}
	}

	var messages []string

	// Field order is made deterministic so repeated validation of the same
	// record reports errors in the same order.
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := fields[name]
		for _, rule := range table[name] {
			if rule != Required && isEmpty(value) {
				continue
			}
			if ok, message := rule.check(name, value); !ok {
				messages = append(messages, message)
				break
			}
		}
	}

	return Result{IsValid: len(messages) == 0, Errors: messages}
}

func fieldMap(record interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
