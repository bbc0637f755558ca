package models

import (
	"encoding/json"
	"time"
)

// The backend takes calendar dates as YYYY-MM-DD, not RFC 3339.

func wireDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func (in UserInput) MarshalJSON() ([]byte, error) {
	type plain UserInput
	return json.Marshal(struct {
		plain
		DateOfBirth string `json:"dateOfBirth"`
	}{plain(in), wireDate(in.DateOfBirth)})
}

func (in ProfileInput) MarshalJSON() ([]byte, error) {
	type plain ProfileInput
	return json.Marshal(struct {
		plain
		DateOfBirth string `json:"dateOfBirth"`
	}{plain(in), wireDate(in.DateOfBirth)})
}

func (in CandidateInput) MarshalJSON() ([]byte, error) {
	type plain CandidateInput
	return json.Marshal(struct {
		plain
		DateOfBirth string `json:"dateOfBirth"`
	}{plain(in), wireDate(in.DateOfBirth)})
}

func (in JobInput) MarshalJSON() ([]byte, error) {
	type plain JobInput
	return json.Marshal(struct {
		plain
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}{plain(in), wireDate(in.StartDate), wireDate(in.EndDate)})
}
