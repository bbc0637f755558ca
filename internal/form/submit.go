package form

import (
	"context"
	"net/url"
)

// ModalType is the style of the shared alert dialog.
type ModalType string

const (
	ModalInfo    ModalType = "INFO"
	ModalSuccess ModalType = "SUCCESS"
	ModalWarning ModalType = "WARNING"
	ModalDanger  ModalType = "DANGER"
)

// Alert is the content of the shared modal dialog.
type Alert struct {
	Type    ModalType
	Title   string
	Message string
}

func Danger(title, message string) *Alert {
	return &Alert{Type: ModalDanger, Title: title, Message: message}
}

const SubmitFailedPrefix = "An error occurred during submission: "

// Outcome is the result of one submit attempt. On failure Values still holds what was entered.
type Outcome struct {
	Values url.Values
	Errors Errors
	Alert  *Alert
	Done   bool
}

// Upload stores the files attached to a submission. It only runs once the values are valid.
type Upload struct {
	// Pending names fields whose file is attached but not stored yet; they count as filled
	// while validating.
	Pending []string
	// Store uploads the files and returns the values carrying the stored URLs.
	Store func(ctx context.Context, values url.Values) (url.Values, error)
}

const pendingFile = "pending-upload"

// Submit validates values and hands the typed value to save exactly once when valid.
// A failing save becomes a danger alert; nothing propagates past this call.
func Submit[V any](ctx context.Context, schema Schema[V], values url.Values, save func(context.Context, V) error) Outcome {
	return SubmitWith(ctx, schema, values, nil, save)
}

// SubmitWith is Submit with an upload step between validation and save. Invalid values
// never reach up.Store.
func SubmitWith[V any](ctx context.Context, schema Schema[V], values url.Values, up *Upload, save func(context.Context, V) error) Outcome {
	out := Outcome{Values: values}
	check := values
	if up != nil && len(up.Pending) > 0 {
		check = make(url.Values, len(values))
		for k, vs := range values {
			check[k] = vs
		}
		for _, name := range up.Pending {
			if check.Get(name) == "" {
				check.Set(name, pendingFile)
			}
		}
	}
	v, errs := schema.Decode(check)
	if len(errs) > 0 {
		out.Errors = errs
		return out
	}
	if up != nil && up.Store != nil {
		stored, err := up.Store(ctx, values)
		if err != nil {
			out.Alert = Danger("Error", SubmitFailedPrefix+err.Error())
			return out
		}
		out.Values = stored
		if v, errs = schema.Decode(stored); len(errs) > 0 {
			out.Errors = errs
			return out
		}
	}
	if err := save(ctx, v); err != nil {
		out.Alert = Danger("Error", SubmitFailedPrefix+err.Error())
		return out
	}
	out.Done = true
	return out
}
