package models

import "time"

// Job is a row of the job list.
type Job struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	StartDate      string      `json:"startDate"`
	EndDate        string      `json:"endDate"`
	WorkingAddress string      `json:"workingAddress"`
	Description    string      `json:"description"`
	SalaryFrom     int64       `json:"salaryFrom"`
	SalaryTo       int64       `json:"salaryTo"`
	Status         JobStatus   `json:"status"`
	Skills         []Reference `json:"skills"`
	Benefits       []Reference `json:"benefits"`
	Levels         []Reference `json:"levels"`
}

func (j Job) Key() string { return j.ID }

// JobInput is the create/update payload for /jobs.
type JobInput struct {
	Title          string    `json:"title" form:"title" binding:"required"`
	StartDate      time.Time `json:"startDate" form:"startDate" time_format:"2006-01-02" binding:"required"`
	EndDate        time.Time `json:"endDate" form:"endDate" time_format:"2006-01-02" binding:"required,gtefield=StartDate"`
	WorkingAddress string    `json:"workingAddress" form:"workingAddress" binding:"required,max=255"`
	Description    string    `json:"description" form:"description" binding:"max=1000"`
	SalaryFrom     int64     `json:"salaryFrom" form:"salaryFrom" binding:"min=0"`
	SalaryTo       int64     `json:"salaryTo" form:"salaryTo" binding:"gtefield=SalaryFrom"`
	Status         JobStatus `json:"status" form:"status" binding:"required,oneof=DRAFT OPEN CLOSED CANCELLED"`
	SkillIDs       []string  `json:"skillIds" form:"skillIds" binding:"min=1"`
	BenefitIDs     []string  `json:"benefitIds" form:"benefitIds"`
	LevelIDs       []string  `json:"levelIds" form:"levelIds" binding:"min=1"`
}

type JobSearch struct {
	SalaryFrom string   `form:"salaryFrom" binding:"omitempty,number"`
	SalaryTo   string   `form:"salaryTo" binding:"omitempty,number"`
	StartDate  string   `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string   `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Status     string   `form:"status" binding:"omitempty,oneof=ALL DRAFT OPEN CLOSED CANCELLED"`
	BenefitIDs []string `form:"benefitIds"`
	LevelIDs   []string `form:"levelIds"`
	SkillIDs   []string `form:"skillIds"`
}
