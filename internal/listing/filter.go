package listing

import (
	"strings"

	"github.com/volkante/student-job-market/internal/dto"
)

// Filter applies the free-text search and the field filters from q to the
// candidate set. Filters are conjunctive; matching is case-insensitive
// substring. The input is never mutated and survivor order is input order;
// ordering is Sort's job.
//
// Status gating is deliberately not done here: the store hands Filter an
// already status-constrained snapshot.
func Filter(candidates []dto.JobPosting, q dto.ListingQuery) []dto.JobPosting {
	out := make([]dto.JobPosting, 0, len(candidates))

	for _, job := range candidates {
		if !matchesSearch(job, q.Search) {
			continue
		}
		if !containsFold(job.Location, q.Location) {
			continue
		}
		if !containsFold(job.Field, q.Field) {
			continue
		}
		if !containsFold(job.EmploymentType, q.EmploymentType) {
			continue
		}

		out = append(out, job)
	}

	return out
}

// matchesSearch keeps a posting when the search term appears in the title,
// company, location or field. An empty term keeps everything.
func matchesSearch(job dto.JobPosting, term string) bool {
	if term == "" {
		return true
	}

	return containsFold(job.Title, term) ||
		containsFold(job.Company, term) ||
		containsFold(job.Location, term) ||
		containsFold(job.Field, term)
}

// containsFold reports whether sub occurs in s ignoring case. An empty sub
// always matches.
func containsFold(s, sub string) bool {
	if sub == "" {
		return true
	}

	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
