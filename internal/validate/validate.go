// Package validate holds the pure field-validation rules for the citizen
// application form. Check has no side effects: the same snapshot always
// yields the same error set.
package validate

import (
	"regexp"
	"strings"
)

// Field names the application form fields.
type Field string

const (
	FieldFullName Field = "fullName"
	FieldEmail    Field = "email"
	FieldBrokerID Field = "brokerId"
	FieldDetails  Field = "details"
)

// FormValues is a snapshot of the application form.
type FormValues struct {
	FullName string
	Email    string
	BrokerID string
	Details  string
}

// Errors maps each failing field to a human-readable message. Fields that
// pass have no entry.
type Errors map[Field]string

// Has reports whether any of the given fields failed.
func (e Errors) Has(fields ...Field) bool {
	for _, f := range fields {
		if _, ok := e[f]; ok {
			return true
		}
	}
	return false
}

// Matches local@domain.tld: non-empty local part, single @, dotted domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Check validates a form snapshot against the loaded broker list and
// returns the error set. brokerIDs is the set of selectable broker ids.
func Check(v FormValues, brokerIDs []string) Errors {
	e := Errors{}

	if strings.TrimSpace(v.FullName) == "" || len(strings.TrimSpace(v.FullName)) < 2 {
		e[FieldFullName] = "Please enter your full name"
	}
	if v.Email == "" || !emailPattern.MatchString(v.Email) {
		e[FieldEmail] = "Please enter a valid email"
	}
	if v.BrokerID == "" || !contains(brokerIDs, v.BrokerID) {
		e[FieldBrokerID] = "Please select a broker"
	}
	if strings.TrimSpace(v.Details) == "" || len(strings.TrimSpace(v.Details)) < 10 {
		e[FieldDetails] = "Please provide more details"
	}

	return e
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
