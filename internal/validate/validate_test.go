package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testBrokers = []string{"1", "2", "3"}

func validValues() FormValues {
	return FormValues{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		BrokerID: "2",
		Details:  "Transferring ownership of my two wheeler",
	}
}

func TestCheck_AllValid(t *testing.T) {
	t.Parallel()

	errs := Check(validValues(), testBrokers)
	assert.Empty(t, errs)
}

func TestCheck_FullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"empty", "", true},
		{"single_char", "J", true},
		{"whitespace_only", "   ", true},
		{"padded_single_char", "  J  ", true},
		{"two_chars", "Jo", false},
		{"full_name", "Jane Doe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validValues()
			v.FullName = tt.value
			errs := Check(v, testBrokers)
			assert.Equal(t, tt.wantErr, errs.Has(FieldFullName))
		})
	}
}

func TestCheck_Email(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"empty", "", true},
		{"not_an_email", "not-an-email", true},
		{"missing_domain_dot", "x@y", true},
		{"missing_local", "@y.z", true},
		{"double_at", "x@@y.z", true},
		{"embedded_space", "x y@z.com", true},
		{"minimal_valid", "x@y.z", false},
		{"typical", "jane.doe@example.co.in", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validValues()
			v.Email = tt.value
			errs := Check(v, testBrokers)
			assert.Equal(t, tt.wantErr, errs.Has(FieldEmail), "email %q", tt.value)
		})
	}
}

func TestCheck_BrokerID(t *testing.T) {
	t.Parallel()

	v := validValues()
	v.BrokerID = ""
	assert.True(t, Check(v, testBrokers).Has(FieldBrokerID))

	// Selection must come from the loaded broker list
	v.BrokerID = "99"
	assert.True(t, Check(v, testBrokers).Has(FieldBrokerID))

	v.BrokerID = "3"
	assert.False(t, Check(v, testBrokers).Has(FieldBrokerID))

	// An empty broker list rejects every selection
	v.BrokerID = "1"
	assert.True(t, Check(v, nil).Has(FieldBrokerID))
}

func TestCheck_Details(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"empty", "", true},
		{"short", "too short", true},
		{"padded_short", "   short    ", true},
		{"exactly_ten", "abcdefghij", false},
		{"long", "registration transfer for my vehicle", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validValues()
			v.Details = tt.value
			errs := Check(v, testBrokers)
			assert.Equal(t, tt.wantErr, errs.Has(FieldDetails))
		})
	}
}

func TestCheck_Idempotent(t *testing.T) {
	t.Parallel()

	v := FormValues{FullName: "J", Email: "bad", BrokerID: "", Details: "short"}
	first := Check(v, testBrokers)
	second := Check(v, testBrokers)
	assert.Equal(t, first, second)
	assert.Len(t, first, 4)
}
