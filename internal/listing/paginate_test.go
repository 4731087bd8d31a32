package listing

import (
	"testing"

	"github.com/volkante/student-job-market/internal/dto"
)

func jobsN(n int) []dto.JobPosting {
	out := make([]dto.JobPosting, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, dto.JobPosting{ID: int64(i)})
	}
	return out
}

func TestPaginatePageMath(t *testing.T) {
	in := jobsN(25)

	items, meta := Paginate(in, 1, 12)

	if len(items) != 12 {
		t.Fatalf("want 12 items, got %d", len(items))
	}
	if meta.Total != 25 || meta.Pages != 3 || meta.Page != 1 {
		t.Fatalf("unexpected meta %+v", meta)
	}
}

func TestPaginateLastPartialPage(t *testing.T) {
	items, meta := Paginate(jobsN(25), 3, 12)

	if len(items) != 1 {
		t.Fatalf("want 1 item on last page, got %d", len(items))
	}
	if items[0].ID != 25 {
		t.Fatalf("want id 25, got %d", items[0].ID)
	}
	if meta.Pages != 3 {
		t.Fatalf("want 3 pages, got %d", meta.Pages)
	}
}

func TestPaginateBeyondRangeIsEmptyNotError(t *testing.T) {
	items, meta := Paginate(jobsN(25), 4, 12)

	if len(items) != 0 {
		t.Fatalf("want empty page, got %d items", len(items))
	}
	if meta.Page != 4 || meta.Total != 25 || meta.Pages != 3 {
		t.Fatalf("meta must stay accurate, got %+v", meta)
	}
}

func TestPaginateHugePageIsEmptyNotPanic(t *testing.T) {
	items, meta := Paginate(jobsN(25), maxInt, 12)

	if len(items) != 0 {
		t.Fatalf("want empty page, got %d items", len(items))
	}
	if meta.Page != maxInt || meta.Total != 25 || meta.Pages != 3 {
		t.Fatalf("meta must stay accurate, got %+v", meta)
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	items, meta := Paginate(nil, 1, 12)

	if len(items) != 0 {
		t.Fatalf("want empty, got %d items", len(items))
	}
	if meta.Pages != 0 || meta.Total != 0 {
		t.Fatalf("want zero pages/total, got %+v", meta)
	}
}

func TestPaginateClampsPageAndPageSize(t *testing.T) {
	items, meta := Paginate(jobsN(100), 0, 0)

	// page 0 → 1, pageSize 0 → 1
	if meta.Page != 1 {
		t.Fatalf("want page clamped to 1, got %d", meta.Page)
	}
	if len(items) != 1 {
		t.Fatalf("want pageSize clamped to 1, got %d items", len(items))
	}

	items, _ = Paginate(jobsN(100), 1, 500)
	if len(items) != MaxPageSize {
		t.Fatalf("want pageSize capped at %d, got %d items", MaxPageSize, len(items))
	}
}
