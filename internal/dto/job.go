package dto

import (
	"time"
)

// Status is the moderation state of a posting. Every posting is created as
// StatusPending and only moves through the moderation endpoints.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Role is the caller identity attribute passed explicitly into every
// mutating operation. The HTTP layer derives it, the core only checks it.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleUser:
		return RoleUser
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleAnonymous
	}
}

func (r Role) Authenticated() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) Admin() bool {
	return r == RoleAdmin
}

// Canonical employment types. The column is free text and the filter is a
// substring match, so these are not enforced as an enum.
const (
	EmploymentFullTime   = "full-time"
	EmploymentPartTime   = "part-time"
	EmploymentInternship = "internship"
	EmploymentContract   = "contract"
)

// JobPosting is a stored job advertisement.
type JobPosting struct {
	ID             int64     `json:"id" example:"42"`
	Title          string    `json:"title" example:"Junior Web Developer"`
	Company        string    `json:"company" example:"TechCorp A.Ş."`
	Location       string    `json:"location" example:"İstanbul"`
	Salary         *string   `json:"salary,omitempty" example:"8.000 - 12.000 TL"`
	EmploymentType string    `json:"employment_type" example:"full-time"`
	Field          string    `json:"field" example:"Yazılım Geliştirme"`
	ContactEmail   string    `json:"contact_email" example:"hr@techcorp.com"`
	Description    string    `json:"description"`
	Requirements   *string   `json:"requirements,omitempty"`
	Benefits       *string   `json:"benefits,omitempty"`
	StartDate      *string   `json:"start_date,omitempty" example:"2026-09-15"` // YYYY-MM-DD
	Status         Status    `json:"status" example:"pending"`
	CreatedAt      time.Time `json:"created_at"`
}

// RawSubmission is the untrusted inbound job-post payload before validation.
// Everything is a plain string; normalization happens in the validator.
type RawSubmission struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	Salary         string `json:"salary"`
	EmploymentType string `json:"employment_type"`
	Field          string `json:"field"`
	ContactEmail   string `json:"contact_email"`
	Description    string `json:"description"`
	Requirements   string `json:"requirements"`
	Benefits       string `json:"benefits"`
	StartDate      string `json:"start_date"` // YYYY-MM-DD
}

// JobSummary is the public listing row.
type JobSummary struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Company        string  `json:"company"`
	Location       string  `json:"location"`
	Salary         *string `json:"salary,omitempty"`
	EmploymentType string  `json:"employment_type"`
	Field          string  `json:"field"`
	Description    string  `json:"description"`
	CreatedAt      string  `json:"created_at"`
	StartDate      *string `json:"start_date,omitempty"`
}

// JobDetail is the public detail view; unlike the summary it exposes the
// contact address.
type JobDetail struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Company        string  `json:"company"`
	Location       string  `json:"location"`
	Salary         *string `json:"salary,omitempty"`
	EmploymentType string  `json:"employment_type"`
	Field          string  `json:"field"`
	ContactEmail   string  `json:"contact_email"`
	Description    string  `json:"description"`
	Requirements   *string `json:"requirements,omitempty"`
	Benefits       *string `json:"benefits,omitempty"`
	StartDate      *string `json:"start_date,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// AdminJobRow is the moderation queue row; it carries the status.
type AdminJobRow struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Company        string  `json:"company"`
	Location       string  `json:"location"`
	EmploymentType string  `json:"employment_type"`
	Field          string  `json:"field"`
	Status         Status  `json:"status"`
	CreatedAt      string  `json:"created_at"`
	StartDate      *string `json:"start_date,omitempty"`
}

// Stats are the admin dashboard counters.
type Stats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}
