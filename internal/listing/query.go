package listing

import (
	"strconv"
	"strings"

	"github.com/volkante/student-job-market/internal/dto"
)

// Public listing bounds. The page size cap prevents unbounded result sets
// regardless of what the caller asks for.
const (
	DefaultPageSize = 12
	MaxPageSize     = 50
)

// Moderation-queue bounds. The minimum is raised so the queue never renders
// tiny pages; the cap is the shared Paginate cap.
const (
	AdminDefaultPageSize = 20
	AdminMinPageSize     = 10
)

// QueryParams are the raw, untrusted listing parameters as they arrive at
// the boundary. All normalization and clamping happens in NewQuery, nowhere
// else.
type QueryParams struct {
	Search         string
	Location       string
	Field          string
	EmploymentType string
	Sort           string
	Page           string
	PageSize       string
}

// NewQuery builds a normalized ListingQuery. Malformed page/pageSize/sort
// values fall back to defaults instead of failing: the listing endpoint
// stays resilient to junk input.
func NewQuery(p QueryParams) dto.ListingQuery {
	return dto.ListingQuery{
		Search:         strings.TrimSpace(p.Search),
		Location:       strings.TrimSpace(p.Location),
		Field:          strings.TrimSpace(p.Field),
		EmploymentType: strings.TrimSpace(p.EmploymentType),
		Sort:           parseSortKey(p.Sort),
		Page:           clamp(atoiDefault(p.Page, 1), 1, maxInt),
		PageSize:       clamp(atoiDefault(p.PageSize, DefaultPageSize), 1, MaxPageSize),
	}
}

// NewAdminQuery builds a normalized moderation-queue query. A status filter
// outside the known set (including "all") means no filter.
func NewAdminQuery(status, page, pageSize string) dto.AdminQuery {
	q := dto.AdminQuery{
		Page:     clamp(atoiDefault(page, 1), 1, maxInt),
		PageSize: clamp(atoiDefault(pageSize, AdminDefaultPageSize), AdminMinPageSize, MaxPageSize),
	}

	if st := dto.Status(strings.TrimSpace(status)); st.Valid() {
		q.StatusFilter = st
	}

	return q
}

func parseSortKey(s string) dto.SortKey {
	switch dto.SortKey(strings.TrimSpace(s)) {
	case dto.SortOldest:
		return dto.SortOldest
	case dto.SortCompany:
		return dto.SortCompany
	case dto.SortTitle:
		return dto.SortTitle
	default:
		return dto.SortNewest
	}
}

const maxInt = int(^uint(0) >> 1)

func atoiDefault(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}

	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
