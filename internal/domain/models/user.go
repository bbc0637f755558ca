package models

import (
	"slices"
	"time"
)

// UserProfile is the signed-in user as returned by POST /login and kept in session storage.
type UserProfile struct {
	ID             string   `json:"id"`
	FullName       string   `json:"fullName"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	PhoneNumber    string   `json:"phoneNumber"`
	DateOfBirth    string   `json:"dateOfBirth"`
	Gender         bool     `json:"gender"`
	Avatar         string   `json:"avatar"`
	Address        string   `json:"address"`
	Note           string   `json:"note"`
	Roles          []string `json:"roles"`
	DepartmentName string   `json:"departmentName"`
	Active         bool     `json:"active"`
}

// HasAnyRole is an exact, case-sensitive "at least one" match.
func (u *UserProfile) HasAnyRole(required []string) bool {
	if u == nil {
		return false
	}
	for _, r := range required {
		if slices.Contains(u.Roles, r) {
			return true
		}
	}
	return false
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=20"`
}

// LoginResponse is the session payload returned by the auth backend.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        *UserProfile `json:"user"`
}

// User is a row of the user management list.
type User struct {
	ID          string      `json:"id"`
	FullName    string      `json:"fullName"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber"`
	DateOfBirth string      `json:"dateOfBirth"`
	Active      bool        `json:"active"`
	Gender      bool        `json:"gender"`
	Avatar      string      `json:"avatar"`
	Address     string      `json:"address"`
	Note        string      `json:"note"`
	Department  *Reference  `json:"department"`
	Roles       []Reference `json:"roles"`
	InsertedAt  string      `json:"insertedAt,omitempty"`
	UpdatedAt   string      `json:"updatedAt,omitempty"`
}

func (u User) Key() string { return u.ID }

// UserInput is the create/update payload for /users.
type UserInput struct {
	FullName     string    `json:"fullName" form:"fullName" binding:"required"`
	Email        string    `json:"email" form:"email" binding:"required,email"`
	PhoneNumber  string    `json:"phoneNumber" form:"phoneNumber" binding:"required"`
	DateOfBirth  time.Time `json:"dateOfBirth" form:"dateOfBirth" time_format:"2006-01-02" binding:"required,pastdate"`
	Active       bool      `json:"active" form:"active"`
	Gender       bool      `json:"gender" form:"gender"`
	Avatar       string    `json:"avatar" form:"avatar"`
	Address      string    `json:"address" form:"address" binding:"required,max=255"`
	Note         string    `json:"note" form:"note" binding:"required,max=500"`
	DepartmentID string    `json:"departmentId" form:"departmentId" binding:"required"`
	RoleIDs      []string  `json:"roleIds" form:"roleIds" binding:"min=1"`
}

// UserSearch holds the entity specific criteria of the user list.
type UserSearch struct {
	DepartmentID string   `form:"departmentId"`
	RoleIDs      []string `form:"roleIds"`
	Gender       string   `form:"gender" binding:"omitempty,oneof=true false"`
	Active       string   `form:"active" binding:"omitempty,oneof=true false"`
}

// ProfileInput is the body of PUT /users/update-profile.
type ProfileInput struct {
	FullName    string    `json:"fullName" form:"fullName" binding:"required"`
	Email       string    `json:"email" form:"email" binding:"required,email"`
	PhoneNumber string    `json:"phoneNumber" form:"phoneNumber" binding:"required"`
	DateOfBirth time.Time `json:"dateOfBirth" form:"dateOfBirth" time_format:"2006-01-02" binding:"required,pastdate"`
	Gender      bool      `json:"gender" form:"gender"`
	Address     string    `json:"address" form:"address" binding:"max=255"`
	Note        string    `json:"note" form:"note" binding:"max=500"`
}

// ChangePasswordInput is the body of PUT /users/change-password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" form:"newPassword" binding:"required,min=6,max=20"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required,eqfield=NewPassword"`
}
