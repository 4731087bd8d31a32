package submission

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/volkante/student-job-market/internal/dto"
)

const minDescriptionLen = 10

var regexDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate checks a raw submission and returns every violation it finds, not
// just the first one, so the caller can report all problems at once. A nil
// return means the submission is acceptable.
func Validate(raw dto.RawSubmission) dto.ValidationErrors {
	var out dto.ValidationErrors

	required := []struct {
		field string
		value string
	}{
		{"title", raw.Title},
		{"company", raw.Company},
		{"location", raw.Location},
		{"employment_type", raw.EmploymentType},
		{"field", raw.Field},
		{"contact_email", raw.ContactEmail},
		{"description", raw.Description},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			out = append(out, dto.ValidationError{
				Field:   f.field,
				Code:    dto.ViolationRequired,
				Message: fmt.Sprintf("required field '%s'", f.field),
			})
		}
	}

	if email := strings.TrimSpace(raw.ContactEmail); email != "" && !validEmail(email) {
		out = append(out, dto.ValidationError{
			Field:   "contact_email",
			Code:    dto.ViolationInvalidFormat,
			Message: fmt.Sprintf("invalid value in field 'contact_email'=%s", email),
		})
	}

	// A short description is a distinct violation from a missing one.
	if desc := strings.TrimSpace(raw.Description); desc != "" && utf8.RuneCountInString(desc) < minDescriptionLen {
		out = append(out, dto.ValidationError{
			Field:   "description",
			Code:    dto.ViolationTooShort,
			Message: fmt.Sprintf("field 'description' must be at least %d characters", minDescriptionLen),
		})
	}

	if date := strings.TrimSpace(raw.StartDate); date != "" && !validDate(date) {
		out = append(out, dto.ValidationError{
			Field:   "start_date",
			Code:    dto.ViolationInvalidFormat,
			Message: fmt.Sprintf("invalid value in field 'start_date'=%s", date),
		})
	}

	return out
}

// Build normalizes an already validated submission into a pending posting.
// Blank optional fields stay nil, never an empty-string placeholder.
func Build(raw dto.RawSubmission) dto.JobPosting {
	return dto.JobPosting{
		Title:          strings.TrimSpace(raw.Title),
		Company:        strings.TrimSpace(raw.Company),
		Location:       strings.TrimSpace(raw.Location),
		Salary:         optional(raw.Salary),
		EmploymentType: strings.TrimSpace(raw.EmploymentType),
		Field:          strings.TrimSpace(raw.Field),
		ContactEmail:   strings.TrimSpace(raw.ContactEmail),
		Description:    strings.TrimSpace(raw.Description),
		Requirements:   optional(raw.Requirements),
		Benefits:       optional(raw.Benefits),
		StartDate:      optional(raw.StartDate),
		Status:         dto.StatusPending,
	}
}

// validEmail checks the basic address shape: a non-whitespace local part, a
// single '@', and a non-whitespace domain containing a dot.
func validEmail(s string) bool {
	local, domain, ok := strings.Cut(s, "@")
	if !ok {
		return false
	}

	if local == "" || strings.ContainsFunc(local, unicode.IsSpace) {
		return false
	}

	if domain == "" || strings.ContainsFunc(domain, unicode.IsSpace) || strings.Contains(domain, "@") {
		return false
	}

	return strings.Contains(domain, ".")
}

func validDate(s string) bool {
	if !regexDate.MatchString(s) {
		return false
	}

	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func optional(s string) *string {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	return &v
}
