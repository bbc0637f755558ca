package form

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("pastdate", pastDate)
	}
}

// pastDate accepts dates strictly before today.
func pastDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	if t.IsZero() {
		return true
	}
	y, m, d := time.Now().Date()
	return t.Before(time.Date(y, m, d, 0, 0, 0, 0, t.Location()))
}

// Errors maps a field name to its message. FormKey holds errors not tied to a field.
type Errors map[string]string

const FormKey = "_form"

func (e Errors) Has(name string) bool {
	_, ok := e[name]
	return ok
}

// Schema decodes url.Values into V using gin's form mapping and validates the binding tags.
// Messages overrides the text of one rule, keyed "<field>.<tag>", e.g. "skillIds.min".
type Schema[V any] struct {
	Fields   []Field
	Messages map[string]string
	// Parse rewrites the raw text of a field before mapping, e.g. "1,500" into "1500".
	// Empty text is left alone; a failure is reported as that field's format error.
	Parse map[string]func(string) (string, error)
	// Check runs after tag validation passed, for rules tags cannot express.
	Check func(*V) Errors
}

// Decode returns the typed value, or the field errors that block submission.
func (s Schema[V]) Decode(values url.Values) (V, Errors) {
	var v V
	values, errs := s.parse(values)
	if len(errs) > 0 {
		return v, errs
	}
	if err := binding.MapFormWithTag(&v, values, "form"); err != nil {
		return v, Errors{FormKey: "Invalid input: " + err.Error()}
	}
	if err := binding.Validator.ValidateStruct(&v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return v, Errors{FormKey: err.Error()}
		}
		return v, s.translate(reflect.TypeOf(v), verrs)
	}
	if s.Check != nil {
		if errs := s.Check(&v); len(errs) > 0 {
			return v, errs
		}
	}
	return v, nil
}

func (s Schema[V]) parse(values url.Values) (url.Values, Errors) {
	if len(s.Parse) == 0 {
		return values, nil
	}
	out := make(url.Values, len(values))
	for k, vs := range values {
		out[k] = vs
	}
	errs := Errors{}
	for name, parse := range s.Parse {
		raw := out[name]
		if len(raw) == 0 {
			continue
		}
		parsed := make([]string, 0, len(raw))
		for _, r := range raw {
			if strings.TrimSpace(r) == "" {
				parsed = append(parsed, r)
				continue
			}
			p, err := parse(r)
			if err != nil {
				errs[name] = Label(s.Fields, name) + " has an invalid format"
				break
			}
			parsed = append(parsed, p)
		}
		out[name] = parsed
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (s Schema[V]) translate(t reflect.Type, verrs validator.ValidationErrors) Errors {
	names := formNames(t)
	out := Errors{}
	for _, fe := range verrs {
		name := names[fe.StructField()]
		if name == "" {
			name = fe.Field()
		}
		if _, seen := out[name]; seen {
			continue
		}
		if msg, ok := s.Messages[name+"."+fe.Tag()]; ok {
			out[name] = msg
			continue
		}
		other := names[fe.Param()]
		if other == "" {
			other = fe.Param()
		}
		out[name] = defaultMessage(Label(s.Fields, name), Label(s.Fields, other), fe)
	}
	return out
}

func defaultMessage(label, other string, fe validator.FieldError) string {
	kind := fe.Kind()
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email address"
	case "min":
		switch kind {
		case reflect.Slice:
			return fmt.Sprintf("Select at least %s", fe.Param())
		case reflect.String:
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "gtefield", "gtfield":
		if fe.Tag() == "gtfield" {
			return fmt.Sprintf("%s must be after %s", label, other)
		}
		return fmt.Sprintf("%s must not be before %s", label, other)
	case "eqfield":
		return label + " does not match"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "pastdate":
		return label + " must be in the past"
	case "number", "datetime":
		return label + " has an invalid format"
	}
	return label + " is invalid"
}

// formNames maps Go field names of t to their form tag names.
func formNames(t reflect.Type) map[string]string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]string{}
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			name = f.Name
		}
		out[f.Name] = name
	}
	return out
}
