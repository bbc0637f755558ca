package screens

import (
	"context"
	"net/url"
	"strings"

	"recruitadmin/internal/apiclient"
	"recruitadmin/internal/domain"
	"recruitadmin/internal/domain/models"
	"recruitadmin/internal/form"
	"recruitadmin/internal/table"
	"recruitadmin/internal/utils"
)

var (
	interviewStatusOptions = enumOptions(models.InterviewStatuses, models.InterviewStatus.Label)
	interviewResultOptions = enumOptions(models.InterviewResults, models.InterviewResult.Label)
)

var interviewSearchFields = []form.Field{
	{Name: keywordField, Label: "Keyword", Kind: form.Text},
	{Name: "startDate", Label: "Start Date", Kind: form.Date},
	{Name: "endDate", Label: "End Date", Kind: form.Date},
	{Name: "recruiterId", Label: "Recruiter", Kind: form.Select, Source: SourceUsers},
	{Name: "jobId", Label: "Job", Kind: form.Select, Source: SourceJobs},
	{Name: "candidateId", Label: "Candidate", Kind: form.Select, Source: SourceCandidates},
	{Name: "interviewerIds", Label: "Interviewer", Kind: form.MultiSelect, Source: SourceUsers},
	{Name: "status", Label: "Status", Kind: form.Select, Options: interviewStatusOptions},
	{Name: "result", Label: "Result", Kind: form.Select, Options: interviewResultOptions},
}

var interviewDetailFields = []form.Field{
	{Name: "title", Label: "Title", Kind: form.Text},
	{Name: "note", Label: "Note", Kind: form.TextArea, Wide: true},
	{Name: "location", Label: "Location", Kind: form.Text},
	{Name: "meetingId", Label: "Meeting ID", Kind: form.Text},
	{Name: "interviewDate", Label: "Interview Date", Kind: form.Date},
	{Name: "startTime", Label: "Start Time", Kind: form.Time},
	{Name: "endTime", Label: "End Time", Kind: form.Time},
	{Name: "status", Label: "Status", Kind: form.Select, Options: interviewStatusOptions},
	{Name: "result", Label: "Result", Kind: form.Select, Options: interviewResultOptions},
	{Name: "recruiterId", Label: "Recruiter", Kind: form.Select, Source: SourceUsers},
	{Name: "jobId", Label: "Job", Kind: form.Select, Source: SourceJobs},
	{Name: "candidateId", Label: "Candidate", Kind: form.Select, Source: SourceCandidates},
	{Name: "interviewerIds", Label: "Interviewers", Kind: form.MultiSelect, Source: SourceUsers,
		ActionLabel: "Add me", ActionURL: SelfOptionURL},
}

var interviewSchema = form.Schema[models.InterviewForm]{
	Fields: interviewDetailFields,
	Messages: map[string]string{
		"interviewerIds.min": "Select at least one interviewer",
	},
}

var interviewColumns = []table.Column[models.Interview]{
	{Field: "title", Label: "Title", Sortable: true, Render: func(i models.Interview) string { return i.Title }},
	{Field: "location", Label: "Location", Render: func(i models.Interview) string { return i.Location }},
	{Field: "meetingId", Label: "Meeting ID", Render: func(i models.Interview) string { return i.MeetingID }},
	{Field: "startDate", Label: "Start", Sortable: true, Render: func(i models.Interview) string { return dateTime(i.StartDate) }},
	{Field: "endDate", Label: "End", Render: func(i models.Interview) string { return dateTime(i.EndDate) }},
	{Field: "status", Label: "Status", Enum: func(i models.Interview) string { return i.Status.Label() }},
	{Field: "result", Label: "Result", Enum: func(i models.Interview) string { return i.Result.Label() }},
	{Field: "recruiter", Label: "Recruiter", Render: func(i models.Interview) string {
		if i.Recruiter == nil {
			return ""
		}
		return i.Recruiter.FullName
	}},
	{Field: "candidate", Label: "Candidate", Render: func(i models.Interview) string {
		if i.Candidate == nil {
			return ""
		}
		return i.Candidate.FullName
	}},
	{Field: "job", Label: "Job", Render: func(i models.Interview) string {
		if i.Job == nil {
			return ""
		}
		return i.Job.Title
	}},
	{Field: "interviewers", Label: "Interviewers", Render: func(i models.Interview) string {
		names := make([]string, 0, len(i.Interviewers))
		for _, u := range i.Interviewers {
			names = append(names, u.FullName)
		}
		return strings.Join(names, ", ")
	}},
}

// Interviews is the interview schedule screen.
func Interviews(c *apiclient.Client, l *Lookups) *Definition[models.Interview] {
	res := apiclient.NewResource[models.Interview](c, "interviews")
	return &Definition[models.Interview]{
		Name:   "interviews",
		Title:  "Interview List",
		Entity: "interview",
		Roles:  ManagerRoles,
		Filter: domain.Filter{
			Size:   10,
			SortBy: "title",
			Order:  domain.Asc,
		},
		PageSizes:    []int{5, 10, 20, 50, 100},
		SearchFields: interviewSearchFields,
		DetailFields: interviewDetailFields,
		Columns:      interviewColumns,
		Key:          models.Interview.Key,
		Resource:     res,
		CheckSearch:  searchCheck[models.InterviewSearch](interviewSearchFields),
		Values:       interviewValues,
		Save: func(ctx context.Context, item *models.Interview, values url.Values, up *form.Upload) form.Outcome {
			return form.SubmitWith(ctx, interviewSchema, values, up, func(ctx context.Context, f models.InterviewForm) error {
				in, err := InterviewPayload(f)
				if err != nil {
					return err
				}
				if item == nil {
					return res.Create(ctx, in)
				}
				return res.Update(ctx, item.ID, in)
			})
		},
		Sources: sourcesOf(interviewSearchFields, interviewDetailFields),
		Client:  c,
		Lookups: l,
	}
}

// InterviewPayload joins the interview date with the start and end clocks.
func InterviewPayload(f models.InterviewForm) (models.InterviewInput, error) {
	date := f.InterviewDate.Format(utils.LayoutDate)
	start, err := utils.CombineDateClock(date, f.StartTime.Format(utils.LayoutClock))
	if err != nil {
		return models.InterviewInput{}, err
	}
	end, err := utils.CombineDateClock(date, f.EndTime.Format(utils.LayoutClock))
	if err != nil {
		return models.InterviewInput{}, err
	}
	return models.InterviewInput{
		Title:          f.Title,
		Note:           f.Note,
		Location:       f.Location,
		MeetingID:      f.MeetingID,
		StartDate:      start,
		EndDate:        end,
		Status:         f.Status,
		Result:         f.Result,
		RecruiterID:    f.RecruiterID,
		JobID:          f.JobID,
		CandidateID:    f.CandidateID,
		InterviewerIDs: f.InterviewerIDs,
	}, nil
}

func interviewValues(i *models.Interview) url.Values {
	if i == nil {
		return url.Values{"status": {string(models.InterviewDraft)}, "result": {string(models.ResultPending)}}
	}
	date, start := utils.SplitWireTimestamp(i.StartDate)
	_, end := utils.SplitWireTimestamp(i.EndDate)
	v := url.Values{
		"title":         {i.Title},
		"note":          {i.Note},
		"location":      {i.Location},
		"meetingId":     {i.MeetingID},
		"interviewDate": {date},
		"startTime":     {start},
		"endTime":       {end},
		"status":        {string(i.Status)},
		"result":        {string(i.Result)},
	}
	if i.Recruiter != nil {
		v.Set("recruiterId", i.Recruiter.ID)
	}
	if i.Job != nil {
		v.Set("jobId", i.Job.ID)
	}
	if i.Candidate != nil {
		v.Set("candidateId", i.Candidate.ID)
	}
	for _, u := range i.Interviewers {
		v.Add("interviewerIds", u.ID)
	}
	return v
}
