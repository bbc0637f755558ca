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
	"recruitadmin/internal/utils"
)

var jobStatusOptions = enumOptions(models.JobStatuses, models.JobStatus.Label)

var jobSearchFields = []form.Field{
	{Name: keywordField, Label: "Keyword", Kind: form.Text, Wide: true},
	{Name: "skillIds", Label: "Skills", Kind: form.MultiSelect, Source: SourceSkills},
	{Name: "startDate", Label: "Start Date", Kind: form.Date},
	{Name: "endDate", Label: "End Date", Kind: form.Date},
	{Name: "salaryFrom", Label: "Salary From", Kind: form.Number},
	{Name: "salaryTo", Label: "Salary To", Kind: form.Number},
	{Name: "benefitIds", Label: "Benefits", Kind: form.MultiSelect, Source: SourceBenefits},
	{Name: "levelIds", Label: "Levels", Kind: form.MultiSelect, Source: SourceLevels},
	{Name: "status", Label: "Status", Kind: form.Select, Options: jobStatusOptions},
}

var jobDetailFields = []form.Field{
	{Name: "title", Label: "Title", Kind: form.Text},
	{Name: "skillIds", Label: "Skills", Kind: form.MultiSelect, Source: SourceSkills},
	{Name: "startDate", Label: "Start Date", Kind: form.Date},
	{Name: "endDate", Label: "End Date", Kind: form.Date},
	{Name: "salaryFrom", Label: "Salary From", Kind: form.Text, Placeholder: "1,500,000"},
	{Name: "salaryTo", Label: "Salary To", Kind: form.Text, Placeholder: "2,000,000"},
	{Name: "workingAddress", Label: "Working Address", Kind: form.Text},
	{Name: "description", Label: "Description", Kind: form.TextArea, Wide: true},
	{Name: "status", Label: "Status", Kind: form.Select, Options: jobStatusOptions},
	{Name: "benefitIds", Label: "Benefits", Kind: form.MultiSelect, Source: SourceBenefits},
	{Name: "levelIds", Label: "Levels", Kind: form.MultiSelect, Source: SourceLevels},
}

var jobSchema = form.Schema[models.JobInput]{
	Fields: jobDetailFields,
	Messages: map[string]string{
		"skillIds.min": "Select at least one skill",
		"levelIds.min": "Select at least one level",
	},
	Parse: map[string]func(string) (string, error){
		"salaryFrom": plainMoney,
		"salaryTo":   plainMoney,
	},
}

// plainMoney accepts amounts typed with thousand separators.
func plainMoney(s string) (string, error) {
	n, err := utils.ParseMoney(s)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n, 10), nil
}

var jobColumns = []table.Column[models.Job]{
	{Field: "title", Label: "Title", Sortable: true, Render: func(j models.Job) string { return j.Title }},
	{Field: "startDate", Label: "Start Date", Sortable: true, Render: func(j models.Job) string { return datePart(j.StartDate) }},
	{Field: "endDate", Label: "End Date", Sortable: true, Render: func(j models.Job) string { return datePart(j.EndDate) }},
	{Field: "workingAddress", Label: "Working Address", Render: func(j models.Job) string { return j.WorkingAddress }},
	{Field: "salary", Label: "Salary", Render: func(j models.Job) string { return utils.FormatSalaryRange(j.SalaryFrom, j.SalaryTo) }},
	{Field: "status", Label: "Status", Enum: func(j models.Job) string { return j.Status.Label() }},
	{Field: "skills", Label: "Skills", Render: func(j models.Job) string { return strings.Join(models.Labels(j.Skills), ", ") }},
	{Field: "benefits", Label: "Benefits", Render: func(j models.Job) string { return strings.Join(models.Labels(j.Benefits), ", ") }},
	{Field: "levels", Label: "Levels", Render: func(j models.Job) string { return strings.Join(models.Labels(j.Levels), ", ") }},
}

// Jobs is the job management screen.
func Jobs(c *apiclient.Client, l *Lookups) *Definition[models.Job] {
	res := apiclient.NewResource[models.Job](c, "jobs")
	return &Definition[models.Job]{
		Name:   "jobs",
		Title:  "Job Management",
		Entity: "job",
		Roles:  ManagerRoles,
		Filter: domain.Filter{
			Size:   10,
			SortBy: "title",
			Order:  domain.Asc,
		},
		PageSizes:    []int{5, 10, 20, 50, 100},
		SearchFields: jobSearchFields,
		DetailFields: jobDetailFields,
		Columns:      jobColumns,
		Key:          models.Job.Key,
		Resource:     res,
		CheckSearch:  searchCheck[models.JobSearch](jobSearchFields),
		Values:       jobValues,
		Save: func(ctx context.Context, item *models.Job, values url.Values, up *form.Upload) form.Outcome {
			return form.SubmitWith(ctx, jobSchema, values, up, func(ctx context.Context, in models.JobInput) error {
				if item == nil {
					return res.Create(ctx, in)
				}
				return res.Update(ctx, item.ID, in)
			})
		},
		Sources: sourcesOf(jobSearchFields, jobDetailFields),
		Client:  c,
		Lookups: l,
	}
}

func jobValues(j *models.Job) url.Values {
	if j == nil {
		return url.Values{"status": {string(models.JobDraft)}, "salaryFrom": {"0"}, "salaryTo": {"0"}}
	}
	return url.Values{
		"title":          {j.Title},
		"startDate":      {datePart(j.StartDate)},
		"endDate":        {datePart(j.EndDate)},
		"salaryFrom":     {utils.FormatMoney(j.SalaryFrom)},
		"salaryTo":       {utils.FormatMoney(j.SalaryTo)},
		"workingAddress": {j.WorkingAddress},
		"description":    {j.Description},
		"status":         {string(j.Status)},
		"skillIds":       models.IDs(j.Skills),
		"benefitIds":     models.IDs(j.Benefits),
		"levelIds":       models.IDs(j.Levels),
	}
}
