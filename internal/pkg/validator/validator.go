// Package validator checks usecase inputs against `validate` struct tags
// and reports failures as a field to message map.
package validator

// Validator validates a struct. Failures come back as ValidationError.
type Validator interface {
	Validate(data any) error
}

// ValidationError maps snake_case field names to human messages.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	msg := "validation failed:"
	for _, k := range sortedKeys(e) {
		msg += " " + k + "=" + e[k] + ";"
	}
	return msg
}

// Values lets the HTTP layer read the fields without importing this type.
func (e ValidationError) Values() map[string]string {
	return e
}
