package screens

import (
	"net/url"

	"recruitadmin/internal/domain/models"
	"recruitadmin/internal/form"
)

// ProfileFields edit the signed-in user's own profile.
var ProfileFields = []form.Field{
	{Name: "fullName", Label: "Full Name", Kind: form.Text},
	{Name: "email", Label: "Email", Kind: form.Email},
	{Name: "phoneNumber", Label: "Phone Number", Kind: form.Text},
	{Name: "dateOfBirth", Label: "Date of birth", Kind: form.Date},
	{Name: "gender", Label: "Gender", Kind: form.Select, Options: genderOptions},
	{Name: "address", Label: "Address", Kind: form.Text},
	{Name: "note", Label: "Note", Kind: form.TextArea, Wide: true},
}

var ProfileSchema = form.Schema[models.ProfileInput]{Fields: ProfileFields}

var PasswordFields = []form.Field{
	{Name: "currentPassword", Label: "Current Password", Kind: form.Password},
	{Name: "newPassword", Label: "New Password", Kind: form.Password},
	{Name: "confirmPassword", Label: "Confirm Password", Kind: form.Password},
}

var PasswordSchema = form.Schema[models.ChangePasswordInput]{
	Fields: PasswordFields,
	Messages: map[string]string{
		"newPassword.min":         "Password must be between 6 and 20 characters",
		"newPassword.max":         "Password must be between 6 and 20 characters",
		"confirmPassword.eqfield": "Passwords do not match",
	},
}

// ProfileValues prefills the profile form.
func ProfileValues(p *models.UserProfile) url.Values {
	if p == nil {
		return url.Values{}
	}
	return url.Values{
		"fullName":    {p.FullName},
		"email":       {p.Email},
		"phoneNumber": {p.PhoneNumber},
		"dateOfBirth": {datePart(p.DateOfBirth)},
		"gender":      {boolValue(p.Gender)},
		"address":     {p.Address},
		"note":        {p.Note},
	}
}
