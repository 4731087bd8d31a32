package dto

// SortKey orders the public listing.
type SortKey string

const (
	SortNewest  SortKey = "newest"
	SortOldest  SortKey = "oldest"
	SortCompany SortKey = "company"
	SortTitle   SortKey = "title"
)

// ListingQuery is the public listing request after boundary normalization.
// Build it with listing.NewQuery so page/pageSize/sort are always clamped.
type ListingQuery struct {
	Search         string
	Location       string
	Field          string
	EmploymentType string
	Sort           SortKey
	Page           int
	PageSize       int
}

// AdminQuery is the moderation-queue listing request. StatusFilter empty
// means all statuses.
type AdminQuery struct {
	StatusFilter Status
	Page         int
	PageSize     int
}

// PageMeta describes one page of a listing. Pages is zero when nothing
// matched.
type PageMeta struct {
	Page  int `json:"page"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
