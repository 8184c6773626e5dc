package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	table := RuleTable{
		"name":   {Required},
		"email":  {Email},
		"amount": {Required, Amount},
		"date":   {Date},
	}

	tests := []struct {
		name       string
		record     interface{}
		wantValid  bool
		wantErrors []string
	}{
		{
			name: "valid record",
			record: map[string]interface{}{
				"name":   "Acme Supplies",
				"email":  "billing@acme.com",
				"amount": 112.5,
				"date":   "2024-03-01",
			},
			wantValid: true,
		},
		{
			name: "missing required field",
			record: map[string]interface{}{
				"email":  "billing@acme.com",
				"amount": 10.0,
			},
			wantValid:  false,
			wantErrors: []string{"name is required"},
		},
		{
			name: "optional field empty is skipped",
			record: map[string]interface{}{
				"name":   "Acme Supplies",
				"amount": 10.0,
			},
			wantValid: true,
		},
		{
			name: "optional field present but invalid",
			record: map[string]interface{}{
				"name":   "Acme Supplies",
				"email":  "not-an-email",
				"amount": 10.0,
			},
			wantValid:  false,
			wantErrors: []string{"email must be a valid email address"},
		},
		{
			name: "negative amount rejected",
			record: map[string]interface{}{
				"name":   "Acme Supplies",
				"amount": -5.0,
			},
			wantValid:  false,
			wantErrors: []string{"amount must be between 0 and 999999999"},
		},
		{
			name: "amount above ceiling rejected",
			record: map[string]interface{}{
				"name":   "Acme Supplies",
				"amount": 1_000_000_000.0,
			},
			wantValid:  false,
			wantErrors: []string{"amount must be between 0 and 999999999"},
		},
		{
			name: "malformed date rejected",
			record: map[string]interface{}{
				"name":   "Acme Supplies",
				"amount": 10.0,
				"date":   "01/03/2024",
			},
			wantValid:  false,
			wantErrors: []string{"date must be a valid date (YYYY-MM-DD)"},
		},
		{
			name: "multiple failures reported in field order",
			record: map[string]interface{}{
				"email": "nope",
				"date":  "nope",
			},
			wantValid: false,
			wantErrors: []string{
				"amount is required",
				"date must be a valid date (YYYY-MM-DD)",
				"email must be a valid email address",
				"name is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.record, table)

			assert.Equal(t, tt.wantValid, result.IsValid)
			if tt.wantErrors != nil {
				assert.Equal(t, tt.wantErrors, result.Errors)
			}
		})
	}
}

func TestValidatePhoneAndPassword(t *testing.T) {
	table := RuleTable{
		"phone":    {Phone},
		"password": {Required, Password},
	}

	valid := Validate(map[string]interface{}{
		"phone":    "+233 24 123 4567",
		"password": "s3cret-enough",
	}, table)
	assert.True(t, valid.IsValid)

	invalid := Validate(map[string]interface{}{
		"phone":    "abc",
		"password": "short",
	}, table)
	assert.False(t, invalid.IsValid)
	assert.Contains(t, invalid.Errors, "password must be at least 8 characters")
	assert.Contains(t, invalid.Errors, "phone must be a valid phone number")
}

func TestValidateUnserializableRecord(t *testing.T) {
	result := Validate(func() {}, RuleTable{"name": {Required}})

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"record is not serializable"}, result.Errors)
}
