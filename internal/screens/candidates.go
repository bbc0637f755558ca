package screens

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"recruitadmin/internal/apiclient"
	"recruitadmin/internal/domain"
	"recruitadmin/internal/domain/models"
	"recruitadmin/internal/form"
	"recruitadmin/internal/table"
)

var (
	highestLevelOptions    = enumOptions(models.HighestLevels, models.HighestLevel.Label)
	candidateStatusOptions = enumOptions(models.CandidateStatuses, models.CandidateStatus.Label)
)

var candidateSearchFields = []form.Field{
	{Name: keywordField, Label: "Keyword", Kind: form.Text},
	{Name: "positionId", Label: "Position", Kind: form.Select, Source: SourcePositions},
	{Name: "recruiterId", Label: "Recruiter", Kind: form.Select, Source: SourceUsers},
	{Name: "skillIds", Label: "Skills", Kind: form.MultiSelect, Source: SourceSkills},
	{Name: "yearsOfExperience", Label: "Year of experience", Kind: form.Number},
	{Name: "highestLevel", Label: "Highest Level", Kind: form.Select, Options: highestLevelOptions},
	{Name: "candidateStatus", Label: "Status", Kind: form.Select, Options: candidateStatusOptions},
	{Name: "gender", Label: "Gender", Kind: form.Select, Options: genderOptions},
	{Name: "isActive", Label: "Active", Kind: form.Checkbox},
}

var candidateDetailFields = []form.Field{
	{Name: "fullName", Label: "Full Name", Kind: form.Text},
	{Name: "email", Label: "Email", Kind: form.Email},
	{Name: "phoneNumber", Label: "Phone Number", Kind: form.Text},
	{Name: "dateOfBirth", Label: "Date of birth", Kind: form.Date},
	{Name: "address", Label: "Address", Kind: form.Text},
	{Name: "note", Label: "Note", Kind: form.TextArea, Wide: true},
	{Name: "gender", Label: "Gender", Kind: form.Select, Options: genderOptions},
	{Name: "recruiterId", Label: "Recruiter", Kind: form.Select, Source: SourceUsers,
		ActionLabel: "Assign me", ActionURL: SelfOptionURL},
	{Name: "positionId", Label: "Position", Kind: form.Select, Source: SourcePositions},
	{Name: "yearsOfExprience", Label: "Years of experience", Kind: form.Number},
	{Name: "highestLevel", Label: "Highest Level", Kind: form.Select, Options: highestLevelOptions},
	{Name: "status", Label: "Status", Kind: form.Select, Options: candidateStatusOptions},
	{Name: "cv", Label: "CV", Kind: form.File, Accept: ".pdf,.doc,.docx"},
	{Name: "skillIds", Label: "Skills", Kind: form.MultiSelect, Source: SourceSkills},
}

var candidateSchema = form.Schema[models.CandidateInput]{
	Fields: candidateDetailFields,
	Messages: map[string]string{
		"skillIds.min": "Select at least one skill",
	},
}

var candidateColumns = []table.Column[models.Candidate]{
	{Field: "fullName", Label: "Full Name", Sortable: true, Render: func(c models.Candidate) string { return c.FullName }},
	{Field: "email", Label: "Email", Sortable: true, Render: func(c models.Candidate) string { return c.Email }},
	{Field: "phoneNumber", Label: "Phone Number", Render: func(c models.Candidate) string { return c.PhoneNumber }},
	{Field: "gender", Label: "Gender", Enum: func(c models.Candidate) string { return models.GenderLabel(c.Gender) }},
	{Field: "position", Label: "Position", Render: func(c models.Candidate) string {
		if c.Position == nil {
			return ""
		}
		return c.Position.Label()
	}},
	{Field: "recruiter", Label: "Recruiter", Render: func(c models.Candidate) string {
		if c.Recruiter == nil {
			return ""
		}
		return c.Recruiter.FullName
	}},
	{Field: "skills", Label: "Skills", Render: func(c models.Candidate) string { return strings.Join(models.Labels(c.Skills), ", ") }},
	{Field: "status", Label: "Status", Enum: func(c models.Candidate) string { return c.Status.Label() }},
	{Field: "isActive", Label: "Active", Enum: func(c models.Candidate) string { return models.ActiveLabel(c.IsActive) }},
	{
		Field: "cv",
		Label: "CV",
		Render: func(c models.Candidate) string {
			if c.CV == "" {
				return ""
			}
			return "View"
		},
		Link: func(c models.Candidate) string {
			if c.CV == "" {
				return ""
			}
			return "/candidates/" + url.PathEscape(c.ID) + "/cv"
		},
	},
}

// Candidates is the candidate list screen.
func Candidates(c *apiclient.Client, l *Lookups) *Definition[models.Candidate] {
	res := apiclient.NewResource[models.Candidate](c, "candidates")
	return &Definition[models.Candidate]{
		Name:   "candidates",
		Title:  "Candidate List",
		Entity: "candidate",
		Roles:  ManagerRoles,
		Filter: domain.Filter{
			Size:   10,
			SortBy: "fullName",
			Order:  domain.Asc,
			Values: url.Values{"isActive": {"true"}},
		},
		PageSizes:    []int{5, 10, 20, 50, 100},
		SearchFields: candidateSearchFields,
		DetailFields: candidateDetailFields,
		Columns:      candidateColumns,
		Key:          models.Candidate.Key,
		Resource:     res,
		CheckSearch:  searchCheck[models.CandidateSearch](candidateSearchFields),
		Values:       candidateValues,
		Save: func(ctx context.Context, item *models.Candidate, values url.Values, up *form.Upload) form.Outcome {
			return form.SubmitWith(ctx, candidateSchema, values, up, func(ctx context.Context, in models.CandidateInput) error {
				if item == nil {
					return res.Create(ctx, in)
				}
				return res.Update(ctx, item.ID, in)
			})
		},
		Sources: sourcesOf(candidateSearchFields, candidateDetailFields),
		Uploads: []string{"cv"},
		Client:  c,
		Lookups: l,
	}
}

func candidateValues(c *models.Candidate) url.Values {
	if c == nil {
		return url.Values{
			"gender":           {"true"},
			"yearsOfExprience": {"0"},
			"status":           {string(models.CandidateOpen)},
		}
	}
	v := url.Values{
		"fullName":         {c.FullName},
		"email":            {c.Email},
		"phoneNumber":      {c.PhoneNumber},
		"dateOfBirth":      {datePart(c.DateOfBirth)},
		"address":          {c.Address},
		"note":             {c.Note},
		"gender":           {boolValue(c.Gender)},
		"yearsOfExprience": {strconv.Itoa(c.YearsOfExperience)},
		"highestLevel":     {string(c.HighestLevel)},
		"status":           {string(c.Status)},
		"cv":               {c.CV},
		"skillIds":         models.IDs(c.Skills),
	}
	if c.Recruiter != nil {
		v.Set("recruiterId", c.Recruiter.ID)
	}
	if c.Position != nil {
		v.Set("positionId", c.Position.ID)
	}
	return v
}

// CV returns the stored CV URL of a candidate.
func CV(ctx context.Context, c *apiclient.Client, id string) (string, error) {
	cand, err := apiclient.NewResource[models.Candidate](c, "candidates").GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if cand.CV == "" {
		return "", domain.NotFoundError{Resource: "cv of candidate " + id}
	}
	return cand.CV, nil
}
