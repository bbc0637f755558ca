// Package form renders data-driven forms and validates their submissions.
package form

import "recruitadmin/internal/domain"

// Kind selects the control rendered for a field.
type Kind string

const (
	Text        Kind = "text"
	Number      Kind = "number"
	Date        Kind = "date"
	Time        Kind = "time"
	Checkbox    Kind = "checkbox"
	Select      Kind = "select"
	MultiSelect Kind = "multiselect"
	File        Kind = "file"
	TextArea    Kind = "textarea"
	Password    Kind = "password"
	Email       Kind = "email"
)

// Field describes one input.
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Placeholder string
	Options     []domain.Option
	// Source names the /options endpoint that filters Options as the user types.
	Source string
	// Image turns a file field into an image picker with preview.
	Image  bool
	Accept string
	// ActionLabel and ActionURL add a button next to a select. ActionURL answers with the
	// option to inject into the selection, even one the source does not list.
	ActionLabel string
	ActionURL   string
	Wide        bool
}

// WithOptions returns a copy of fields where the named field carries opts.
func WithOptions(fields []Field, name string, opts []domain.Option) []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	for i := range out {
		if out[i].Name == name {
			out[i].Options = opts
		}
	}
	return out
}

// Label finds the label of a field by name, falling back to the name.
func Label(fields []Field, name string) string {
	for _, f := range fields {
		if f.Name == name {
			return f.Label
		}
	}
	return name
}
