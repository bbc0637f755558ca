package models

import "time"

// Candidate is a row of the candidate list.
type Candidate struct {
	ID          string     `json:"id"`
	FullName    string     `json:"fullName"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phoneNumber"`
	DateOfBirth string     `json:"dateOfBirth"`
	IsActive    bool       `json:"isActive"`
	Gender      bool       `json:"gender"`
	Address     string     `json:"address"`
	Note        string     `json:"note"`
	Position    *Reference `json:"position"`
	// the backend spells this field without the second "e"
	YearsOfExperience int             `json:"yearsOfExprience"`
	HighestLevel      HighestLevel    `json:"highestLevel"`
	Status            CandidateStatus `json:"status"`
	CV                string          `json:"cv"`
	Recruiter         *User           `json:"recruiter"`
	Skills            []Reference     `json:"skills"`
}

func (c Candidate) Key() string { return c.ID }

// CandidateInput is the create/update payload for /candidates.
type CandidateInput struct {
	FullName          string          `json:"fullName" form:"fullName" binding:"required"`
	Email             string          `json:"email" form:"email" binding:"required,email"`
	PhoneNumber       string          `json:"phoneNumber" form:"phoneNumber" binding:"required"`
	DateOfBirth       time.Time       `json:"dateOfBirth" form:"dateOfBirth" time_format:"2006-01-02" binding:"required,pastdate"`
	Address           string          `json:"address" form:"address" binding:"required,max=255"`
	Note              string          `json:"note" form:"note" binding:"max=500"`
	Gender            bool            `json:"gender" form:"gender"`
	RecruiterID       string          `json:"recruiterId" form:"recruiterId" binding:"required"`
	PositionID        string          `json:"positionId" form:"positionId" binding:"required"`
	YearsOfExperience int             `json:"yearsOfExprience" form:"yearsOfExprience" binding:"min=0,max=60"`
	HighestLevel      HighestLevel    `json:"highestLevel" form:"highestLevel" binding:"required,oneof=HIGH_SCHOOL BACHELOR MASTER PHD"`
	Status            CandidateStatus `json:"status" form:"status" binding:"required"`
	CV                string          `json:"cv" form:"cv" binding:"required"`
	SkillIDs          []string        `json:"skillIds" form:"skillIds" binding:"min=1"`
}

type CandidateSearch struct {
	PositionID        string   `form:"positionId"`
	RecruiterID       string   `form:"recruiterId"`
	SkillIDs          []string `form:"skillIds"`
	YearsOfExperience string   `form:"yearsOfExperience" binding:"omitempty,number"`
	HighestLevel      string   `form:"highestLevel"`
	CandidateStatus   string   `form:"candidateStatus"`
	Gender            string   `form:"gender" binding:"omitempty,oneof=true false"`
	Active            string   `form:"isActive" binding:"omitempty,oneof=true false"`
}
