package listing

import (
	"github.com/volkante/student-job-market/internal/dto"
)

// Paginate slices a sorted set into one page. Page is clamped to at least 1
// and pageSize to [1, MaxPageSize]. A page beyond the end yields an empty
// slice with accurate meta; callers render an empty state, not an error.
func Paginate(sorted []dto.JobPosting, page, pageSize int) ([]dto.JobPosting, dto.PageMeta) {
	if page < 1 {
		page = 1
	}
	pageSize = clamp(pageSize, 1, MaxPageSize)

	total := len(sorted)
	pages := (total + pageSize - 1) / pageSize

	meta := dto.PageMeta{
		Page:  page,
		Total: total,
		Pages: pages,
	}

	// Comparing against pages instead of multiplying keeps an arbitrarily
	// large page number from overflowing the offset.
	if page > pages {
		return []dto.JobPosting{}, meta
	}

	offset := (page - 1) * pageSize
	end := offset + pageSize
	if end > total {
		end = total
	}

	items := make([]dto.JobPosting, end-offset)
	copy(items, sorted[offset:end])

	return items, meta
}
