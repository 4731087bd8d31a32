package fixtures

import (
	"context"
	"fmt"

	"github.com/volkante/student-job-market/internal/dto"
)

type JobCreator interface {
	Create(ctx context.Context, p dto.JobPosting) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status dto.Status) error
}

// Seed loads a handful of demo postings: three approved, one pending for
// trying out the moderation queue. Meant for local development only.
func Seed(ctx context.Context, store JobCreator) error {
	demo := []struct {
		job    dto.JobPosting
		status dto.Status
	}{
		{
			job: dto.JobPosting{
				Title:          "Junior Web Developer",
				Company:        "TechCorp A.Ş.",
				Location:       "İstanbul",
				Salary:         ptr("8.000 - 12.000 TL"),
				EmploymentType: dto.EmploymentFullTime,
				Field:          "Yazılım Geliştirme",
				ContactEmail:   "hr@techcorp.com",
				Description:    "We are looking for a motivated Junior Web Developer to join our dynamic team. You will work on exciting projects using modern technologies like React, Node.js, and cloud platforms.",
				Requirements:   ptr("Basic knowledge of HTML, CSS, JavaScript. Familiarity with React or Vue.js is a plus."),
				Benefits:       ptr("Competitive salary, health insurance, flexible working hours, learning budget."),
			},
			status: dto.StatusApproved,
		},
		{
			job: dto.JobPosting{
				Title:          "Frontend Intern",
				Company:        "StartupLab",
				Location:       "Ankara",
				Salary:         ptr("4.000 - 6.000 TL"),
				EmploymentType: dto.EmploymentPartTime,
				Field:          "Web Tasarım",
				ContactEmail:   "jobs@startuplab.co",
				Description:    "Join our innovative startup as a Frontend Intern! You will work closely with senior developers to create responsive user interfaces.",
				Requirements:   ptr("Currently studying Computer Science or related field."),
				Benefits:       ptr("Flexible part-time schedule, mentorship program, potential for full-time offer."),
			},
			status: dto.StatusApproved,
		},
		{
			job: dto.JobPosting{
				Title:          "Data Analyst Student Position",
				Company:        "DataViz Ltd.",
				Location:       "İzmir",
				Salary:         ptr("6.000 - 8.000 TL"),
				EmploymentType: dto.EmploymentFullTime,
				Field:          "Veri Analizi",
				ContactEmail:   "careers@dataviz.com",
				Description:    "Excellent opportunity for a student to gain hands-on experience in data analysis and visualization. Work with real client data.",
				Requirements:   ptr("Statistics or Mathematics background preferred. Excel, SQL basics."),
				Benefits:       ptr("Professional development, training in advanced analytics tools."),
			},
			status: dto.StatusApproved,
		},
		{
			job: dto.JobPosting{
				Title:          "Backend Developer Internship",
				Company:        "CloudTech Solutions",
				Location:       "Bursa",
				Salary:         ptr("5.000 - 7.000 TL"),
				EmploymentType: dto.EmploymentInternship,
				Field:          "Backend Development",
				ContactEmail:   "hr@cloudtech.com",
				Description:    "Great opportunity for a backend developer intern to work with our cloud infrastructure team. Learn APIs, databases, and cloud deployment.",
				Requirements:   ptr("Basic understanding of programming concepts."),
				Benefits:       ptr("Internship stipend, mentorship program, potential conversion to full-time."),
			},
			status: dto.StatusPending,
		},
	}

	for _, d := range demo {
		d.job.Status = dto.StatusPending

		id, err := store.Create(ctx, d.job)
		if err != nil {
			return fmt.Errorf("store.Create %q: %w", d.job.Title, err)
		}

		// Postings always enter as pending; approved demo data goes through
		// the same status write the moderation path uses.
		if d.status != dto.StatusPending {
			if err := store.UpdateStatus(ctx, id, d.status); err != nil {
				return fmt.Errorf("store.UpdateStatus %q: %w", d.job.Title, err)
			}
		}
	}

	return nil
}

func ptr(s string) *string {
	return &s
}
