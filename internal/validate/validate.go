// Package validate implements the required-field and email checks applied
// to form submissions before anything is written.
package validate

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field is one form input plus its inline error state.
type Field struct {
	Name  string
	Label string
	Value string
	Error string
}

// Required checks the trimmed value is non-empty, recording an inline error
// when it is not.
func (f *Field) Required() bool {
	if strings.TrimSpace(f.Value) == "" {
		f.Error = f.Label + " is required."
		return false
	}
	f.Error = ""
	return true
}

// Email checks the trimmed value looks like local@domain.tld.
func (f *Field) Email() bool {
	if !emailPattern.MatchString(strings.TrimSpace(f.Value)) {
		f.Error = "Enter a valid email address."
		return false
	}
	f.Error = ""
	return true
}

// Form collects fields so a handler can combine checks and refuse the whole
// submission when any fail. No record is written unless every check passes.
type Form struct {
	fields []*Field
}

// Field registers an input and returns it for chaining checks.
func (fm *Form) Field(name, label, value string) *Field {
	f := &Field{Name: name, Label: label, Value: value}
	fm.fields = append(fm.fields, f)
	return f
}

// Require registers an input and runs the required check.
func (fm *Form) Require(name, label, value string) bool {
	return fm.Field(name, label, value).Required()
}

// Email registers an input and runs required plus the email pattern check.
func (fm *Form) Email(name, value string) bool {
	f := fm.Field(name, "Email", value)
	return f.Required() && f.Email()
}

// Valid reports whether every registered field passed.
func (fm *Form) Valid() bool {
	for _, f := range fm.fields {
		if f.Error != "" {
			return false
		}
	}
	return true
}

// Errors returns the inline error per failed field.
func (fm *Form) Errors() map[string]string {
	errs := make(map[string]string)
	for _, f := range fm.fields {
		if f.Error != "" {
			errs[f.Name] = f.Error
		}
	}
	return errs
}
