package submission

import (
	"testing"

	"github.com/volkante/student-job-market/internal/dto"
)

func validSubmission() dto.RawSubmission {
	return dto.RawSubmission{
		Title:          "Junior Web Developer",
		Company:        "TechCorp",
		Location:       "İstanbul",
		EmploymentType: "full-time",
		Field:          "Web Development",
		ContactEmail:   "hr@techcorp.com",
		Description:    "A description well over the minimum length.",
	}
}

func violationByField(t *testing.T, errs dto.ValidationErrors, field string) dto.ValidationError {
	t.Helper()
	for _, v := range errs {
		if v.Field == field {
			return v
		}
	}
	t.Fatalf("no violation for field %q in %v", field, errs)
	return dto.ValidationError{}
}

func TestValidateAcceptsCompleteSubmission(t *testing.T) {
	if errs := Validate(validSubmission()); len(errs) != 0 {
		t.Fatalf("want no violations, got %v", errs)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	raw := validSubmission()
	raw.Title = "   "
	raw.Description = "short"

	errs := Validate(raw)

	if len(errs) != 2 {
		t.Fatalf("want exactly 2 violations, got %d: %v", len(errs), errs)
	}

	if v := violationByField(t, errs, "title"); v.Code != dto.ViolationRequired {
		t.Errorf("title: want code %q, got %q", dto.ViolationRequired, v.Code)
	}
	if v := violationByField(t, errs, "description"); v.Code != dto.ViolationTooShort {
		t.Errorf("description: want code %q, got %q", dto.ViolationTooShort, v.Code)
	}
}

func TestValidateEmailShape(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.co", true},
		{"hr@techcorp.com", true},
		{"bademail", false},
		{"@b.co", false},
		{"a@", false},
		{"a@nodot", false},
		{"a b@c.co", false},
		{"a@b c.co", false},
		{"a@b@c.co", false},
		{"a\nb@c.co", false},
		{"a@b\nc.co", false},
		{"a b@c.co", false}, // non-breaking space
		{"a@b c.co", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			raw := validSubmission()
			raw.ContactEmail = tt.email

			errs := Validate(raw)
			if tt.valid && len(errs) != 0 {
				t.Fatalf("want valid, got %v", errs)
			}
			if !tt.valid {
				if v := violationByField(t, errs, "contact_email"); v.Code != dto.ViolationInvalidFormat {
					t.Fatalf("want code %q, got %q", dto.ViolationInvalidFormat, v.Code)
				}
			}
		})
	}
}

func TestValidateStartDate(t *testing.T) {
	raw := validSubmission()
	raw.StartDate = "not-a-date"

	errs := Validate(raw)
	if v := violationByField(t, errs, "start_date"); v.Code != dto.ViolationInvalidFormat {
		t.Fatalf("want code %q, got %q", dto.ViolationInvalidFormat, v.Code)
	}

	raw.StartDate = "2026-02-30"
	if errs := Validate(raw); len(errs) == 0 {
		t.Fatal("impossible calendar date must be rejected")
	}

	raw.StartDate = "2026-09-15"
	if errs := Validate(raw); len(errs) != 0 {
		t.Fatalf("valid date rejected: %v", errs)
	}
}

func TestValidateBlankOptionalFieldsPass(t *testing.T) {
	raw := validSubmission()
	raw.Salary = ""
	raw.Requirements = "  "
	raw.Benefits = ""
	raw.StartDate = ""

	if errs := Validate(raw); len(errs) != 0 {
		t.Fatalf("blank optionals must not fail validation: %v", errs)
	}
}

func TestBuildNormalizes(t *testing.T) {
	raw := validSubmission()
	raw.Title = "  Junior Web Developer  "
	raw.Salary = "  "
	raw.Requirements = " HTML, CSS "

	job := Build(raw)

	if job.Title != "Junior Web Developer" {
		t.Errorf("title not trimmed: %q", job.Title)
	}
	if job.Status != dto.StatusPending {
		t.Errorf("want status pending, got %q", job.Status)
	}
	if job.Salary != nil {
		t.Errorf("blank optional must stay nil, got %q", *job.Salary)
	}
	if job.Requirements == nil || *job.Requirements != "HTML, CSS" {
		t.Errorf("requirements not normalized: %v", job.Requirements)
	}
	if job.StartDate != nil {
		t.Errorf("blank start date must stay nil")
	}
}

func TestValidateDescriptionLengthCountsRunes(t *testing.T) {
	raw := validSubmission()
	raw.Description = "ığüşöçİĞÜŞ" // 10 runes, more than 10 bytes

	if errs := Validate(raw); len(errs) != 0 {
		t.Fatalf("10-rune description must pass: %v", errs)
	}
}
