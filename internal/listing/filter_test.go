package listing

import (
	"testing"
	"time"

	"github.com/volkante/student-job-market/internal/dto"
)

func testJob(id int64, title, company, location, field, employmentType string) dto.JobPosting {
	return dto.JobPosting{
		ID:             id,
		Title:          title,
		Company:        company,
		Location:       location,
		Field:          field,
		EmploymentType: employmentType,
		Status:         dto.StatusApproved,
		CreatedAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour),
	}
}

func sampleJobs() []dto.JobPosting {
	return []dto.JobPosting{
		testJob(1, "Junior Web Developer", "TechCorp", "İstanbul", "Web Development", "full-time"),
		testJob(2, "Frontend Intern", "StartupLab", "Ankara", "Web Tasarım", "part-time"),
		testJob(3, "Data Analyst", "DataViz", "İzmir", "Veri Analizi", "full-time"),
		testJob(4, "Backend Intern", "CloudTech", "Ankara", "Web Development", "internship"),
	}
}

func ids(jobs []dto.JobPosting) []int64 {
	out := make([]int64, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func equalIDs(a []int64, b ...int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterEmptyQueryKeepsInputOrder(t *testing.T) {
	in := sampleJobs()

	got := Filter(in, dto.ListingQuery{})

	if !equalIDs(ids(got), 1, 2, 3, 4) {
		t.Fatalf("expected input order unchanged, got %v", ids(got))
	}
}

func TestFilterSearchMatchesAnyOfFourFields(t *testing.T) {
	in := sampleJobs()

	tests := []struct {
		name   string
		search string
		want   []int64
	}{
		{"title match", "frontend", []int64{2}},
		{"company match", "dataviz", []int64{3}},
		{"location match", "ankara", []int64{2, 4}},
		{"field match", "web", []int64{1, 2, 4}},
		{"case-insensitive", "TECHCORP", []int64{1}},
		{"no match", "devops", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(in, dto.ListingQuery{Search: tt.search})
			if !equalIDs(ids(got), tt.want...) {
				t.Fatalf("search %q: want %v, got %v", tt.search, tt.want, ids(got))
			}
		})
	}
}

func TestFilterConjunction(t *testing.T) {
	in := sampleJobs()

	got := Filter(in, dto.ListingQuery{Location: "Ankara", Field: "Web"})

	// Both constraints must hold: 2 matches (Ankara + Web Tasarım) and
	// 4 matches (Ankara + Web Development); 1 matches Web only.
	if !equalIDs(ids(got), 2, 4) {
		t.Fatalf("want [2 4], got %v", ids(got))
	}
}

func TestFilterEmploymentType(t *testing.T) {
	in := sampleJobs()

	got := Filter(in, dto.ListingQuery{EmploymentType: "full"})

	if !equalIDs(ids(got), 1, 3) {
		t.Fatalf("want [1 3], got %v", ids(got))
	}
}

func TestFilterEmptyResultIsNotNilAndNotError(t *testing.T) {
	got := Filter(sampleJobs(), dto.ListingQuery{Search: "no-such-thing"})

	if got == nil {
		t.Fatal("empty result must be an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Fatalf("want empty, got %v", ids(got))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := sampleJobs()

	_ = Filter(in, dto.ListingQuery{Search: "intern"})

	if !equalIDs(ids(in), 1, 2, 3, 4) {
		t.Fatalf("input mutated: %v", ids(in))
	}
}
