package models

import "time"

// Interview is a row of the interview list.
type Interview struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Note         string          `json:"note"`
	Location     string          `json:"location"`
	MeetingID    string          `json:"meetingId"`
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
	Status       InterviewStatus `json:"status"`
	Result       InterviewResult `json:"result"`
	Recruiter    *User           `json:"recruiter"`
	Job          *Job            `json:"job"`
	Candidate    *Candidate      `json:"candidate"`
	Interviewers []User          `json:"interviewers"`
}

func (i Interview) Key() string { return i.ID }

// InterviewForm is what the detail panel edits. Date and clock fields are combined into
// StartDate/EndDate of InterviewInput before saving.
type InterviewForm struct {
	Title          string          `form:"title" binding:"required,max=255"`
	Note           string          `form:"note" binding:"max=500"`
	Location       string          `form:"location" binding:"required"`
	MeetingID      string          `form:"meetingId"`
	InterviewDate  time.Time       `form:"interviewDate" time_format:"2006-01-02" binding:"required"`
	StartTime      time.Time       `form:"startTime" time_format:"15:04" binding:"required"`
	EndTime        time.Time       `form:"endTime" time_format:"15:04" binding:"required,gtfield=StartTime"`
	Status         InterviewStatus `form:"status" binding:"required,oneof=DRAFT INVITED COMPLETED CANCELLED"`
	Result         InterviewResult `form:"result" binding:"required,oneof=PENDING PASSED FAILED"`
	RecruiterID    string          `form:"recruiterId" binding:"required"`
	JobID          string          `form:"jobId" binding:"required"`
	CandidateID    string          `form:"candidateId" binding:"required"`
	InterviewerIDs []string        `form:"interviewerIds" binding:"min=1"`
}

// InterviewInput is the create/update payload for /interviews.
type InterviewInput struct {
	Title          string          `json:"title"`
	Note           string          `json:"note"`
	Location       string          `json:"location"`
	MeetingID      string          `json:"meetingId"`
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	Status         InterviewStatus `json:"status"`
	Result         InterviewResult `json:"result"`
	RecruiterID    string          `json:"recruiterId"`
	JobID          string          `json:"jobId"`
	CandidateID    string          `json:"candidateId"`
	InterviewerIDs []string        `json:"interviewerIds"`
}

type InterviewSearch struct {
	StartDate      string   `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate        string   `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	RecruiterID    string   `form:"recruiterId"`
	JobID          string   `form:"jobId"`
	CandidateID    string   `form:"candidateId"`
	InterviewerIDs []string `form:"interviewerIds"`
	Status         string   `form:"status"`
	Result         string   `form:"result"`
}
