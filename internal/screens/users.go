package screens

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"recruitadmin/internal/apiclient"
	"recruitadmin/internal/domain"
	"recruitadmin/internal/domain/models"
	"recruitadmin/internal/form"
	"recruitadmin/internal/table"
)

var userSearchFields = []form.Field{
	{Name: keywordField, Label: "Keyword", Kind: form.Text},
	{Name: "departmentId", Label: "Department", Kind: form.Select, Source: SourceDepartments},
	{Name: "roleIds", Label: "Roles", Kind: form.MultiSelect, Source: SourceRoles},
	{Name: "gender", Label: "Gender", Kind: form.Select, Options: genderOptions},
	{Name: "active", Label: "Active", Kind: form.Checkbox},
}

var userDetailFields = []form.Field{
	{Name: "fullName", Label: "Full Name", Kind: form.Text},
	{Name: "email", Label: "Email", Kind: form.Email},
	{Name: "phoneNumber", Label: "Phone Number", Kind: form.Text},
	{Name: "dateOfBirth", Label: "Date of birth", Kind: form.Date},
	{Name: "gender", Label: "Gender", Kind: form.Select, Options: genderOptions},
	{Name: "departmentId", Label: "Department", Kind: form.Select, Source: SourceDepartments},
	{Name: "roleIds", Label: "Roles", Kind: form.MultiSelect, Source: SourceRoles},
	{Name: "address", Label: "Address", Kind: form.Text},
	{Name: "note", Label: "Note", Kind: form.TextArea, Wide: true},
	{Name: "active", Label: "Active", Kind: form.Checkbox},
	{Name: "avatar", Label: "Avatar", Kind: form.File, Image: true, Accept: "image/*"},
}

var userSchema = form.Schema[models.UserInput]{
	Fields: userDetailFields,
	Messages: map[string]string{
		"roleIds.min": "Select at least one role",
	},
}

var userColumns = []table.Column[models.User]{
	{Field: "username", Label: "Username", Sortable: true, Render: func(u models.User) string { return u.Username },
		Link: func(u models.User) string { return "/users/" + url.PathEscape(u.ID) + "/info" }},
	{Field: "email", Label: "Email", Sortable: true, Render: func(u models.User) string { return u.Email }},
	{Field: "phoneNumber", Label: "Phone Number", Render: func(u models.User) string { return u.PhoneNumber }},
	{Field: "gender", Label: "Gender", Enum: func(u models.User) string { return models.GenderLabel(u.Gender) }},
	{Field: "department", Label: "Department", Render: func(u models.User) string {
		if u.Department == nil {
			return ""
		}
		return u.Department.Label()
	}},
	{Field: "roles", Label: "Roles", Render: func(u models.User) string { return strings.Join(models.Labels(u.Roles), ", ") }},
	{
		Field: "active",
		Label: "Active",
		Enum:  func(u models.User) string { return models.ActiveLabel(u.Active) },
		// clicking the status flips it
		Action: func(u models.User) string {
			return fmt.Sprintf("/users/%s/active?to=%t", url.PathEscape(u.ID), !u.Active)
		},
	},
}

// Users is the user management screen.
func Users(c *apiclient.Client, l *Lookups) *Definition[models.User] {
	res := apiclient.NewResource[models.User](c, "users")
	return &Definition[models.User]{
		Name:   "users",
		Title:  "User Management",
		Entity: "user",
		Roles:  ManagerRoles,
		Filter: domain.Filter{
			Size:   10,
			SortBy: "username",
			Order:  domain.Asc,
			Values: url.Values{"active": {"true"}},
		},
		PageSizes:    []int{10, 20, 50, 100},
		SearchFields: userSearchFields,
		DetailFields: userDetailFields,
		Columns:      userColumns,
		Key:          models.User.Key,
		Resource:     res,
		CheckSearch:  searchCheck[models.UserSearch](userSearchFields),
		Values:       userValues,
		Save: func(ctx context.Context, item *models.User, values url.Values, up *form.Upload) form.Outcome {
			return form.SubmitWith(ctx, userSchema, values, up, func(ctx context.Context, in models.UserInput) error {
				if item == nil {
					return res.Create(ctx, in)
				}
				return res.Update(ctx, item.ID, in)
			})
		},
		Sources: sourcesOf(userSearchFields, userDetailFields),
		Uploads: []string{"avatar"},
		Client:  c,
		Lookups: l,
	}
}

func userValues(u *models.User) url.Values {
	if u == nil {
		return url.Values{"gender": {"false"}, "active": {"true"}}
	}
	v := url.Values{
		"fullName":    {u.FullName},
		"email":       {u.Email},
		"phoneNumber": {u.PhoneNumber},
		"dateOfBirth": {datePart(u.DateOfBirth)},
		"gender":      {boolValue(u.Gender)},
		"address":     {u.Address},
		"note":        {u.Note},
		"active":      {boolValue(u.Active)},
		"avatar":      {u.Avatar},
		"roleIds":     models.IDs(u.Roles),
	}
	if u.Department != nil {
		v.Set("departmentId", u.Department.ID)
	}
	return v
}

// UserCard is the read-only detail of one user.
type UserCard struct {
	ID          string
	FullName    string
	Username    string
	Email       string
	PhoneNumber string
	Gender      string
	Department  string
	Roles       string
	Avatar      string
	Active      bool
	Status      string
	// Toggle is where the activate/deactivate button posts.
	Toggle string
}

// UserInfo loads the card of user id.
func UserInfo(ctx context.Context, c *apiclient.Client, id string) (UserCard, error) {
	u, err := apiclient.NewResource[models.User](c, "users").GetByID(ctx, id)
	if err != nil {
		return UserCard{}, err
	}
	card := UserCard{
		ID:          u.ID,
		FullName:    u.FullName,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Gender:      models.GenderLabel(u.Gender),
		Roles:       strings.Join(models.Labels(u.Roles), ", "),
		Avatar:      u.Avatar,
		Active:      u.Active,
		Status:      "Inactive (Banned)",
		Toggle:      fmt.Sprintf("/users/%s/active?to=%t", url.PathEscape(u.ID), !u.Active),
	}
	if u.Active {
		card.Status = models.ActiveLabel(true)
	}
	if u.Department != nil {
		card.Department = u.Department.Label()
	}
	return card, nil
}
