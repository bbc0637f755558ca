package form

import (
	"net/url"
	"slices"
)

// OptionView is an option with its selection state resolved.
type OptionView struct {
	Label    string
	Value    string
	Selected bool
}

// Control is what a template needs to draw one field.
type Control struct {
	Field
	// Template is the partial that draws the control.
	Template string
	Value    string
	Values   []string
	Checked  bool
	Error    string
	Options  []OptionView
}

// Render builds one control per field from the current values and errors.
func Render(fields []Field, values url.Values, errs Errors) []Control {
	out := make([]Control, 0, len(fields))
	for _, f := range fields {
		c := Control{Field: f, Value: values.Get(f.Name), Values: values[f.Name], Error: errs[f.Name]}
		switch f.Kind {
		case TextArea:
			c.Template = "control_textarea"
		case Checkbox:
			c.Template = "control_checkbox"
			c.Checked = c.Value == "true" || c.Value == "on"
		case Select, MultiSelect:
			c.Template = "control_select"
			c.Options = optionViews(f, c.Values)
		case File:
			c.Template = "control_file"
		default:
			c.Template = "control_input"
		}
		out = append(out, c)
	}
	return out
}

func optionViews(f Field, selected []string) []OptionView {
	out := make([]OptionView, 0, len(f.Options))
	for _, o := range f.Options {
		out = append(out, OptionView{Label: o.Label, Value: o.Value, Selected: slices.Contains(selected, o.Value)})
	}
	return out
}

// InputType is the HTML input type of a plain input control.
func (c Control) InputType() string {
	switch c.Kind {
	case Number, Date, Time, Password, Email:
		return string(c.Kind)
	}
	return "text"
}

// Multiple reports whether the control holds a list of values.
func (c Control) Multiple() bool { return c.Kind == MultiSelect }
