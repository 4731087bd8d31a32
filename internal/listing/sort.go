package listing

import (
	"sort"
	"strings"

	"github.com/volkante/student-job-market/internal/dto"
)

// Sort orders the candidate set by key and returns a new slice; the input is
// not touched. Ties are broken by id so the order is deterministic for
// postings created in the same instant:
//
//	newest:  createdAt desc, id desc
//	oldest:  createdAt asc, id asc
//	company: company asc (case-insensitive), id asc
//	title:   title asc (case-insensitive), id asc
//
// An unknown key sorts as newest.
func Sort(candidates []dto.JobPosting, key dto.SortKey) []dto.JobPosting {
	out := make([]dto.JobPosting, len(candidates))
	copy(out, candidates)

	var less func(a, b dto.JobPosting) bool

	switch key {
	case dto.SortOldest:
		less = func(a, b dto.JobPosting) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		}
	case dto.SortCompany:
		less = func(a, b dto.JobPosting) bool {
			if c := compareFold(a.Company, b.Company); c != 0 {
				return c < 0
			}
			return a.ID < b.ID
		}
	case dto.SortTitle:
		less = func(a, b dto.JobPosting) bool {
			if c := compareFold(a.Title, b.Title); c != 0 {
				return c < 0
			}
			return a.ID < b.ID
		}
	default: // newest
		less = func(a, b dto.JobPosting) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })

	return out
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
