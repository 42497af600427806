package utils

// Defaults applied when a list request omits page or perPage
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
	// MaxPage keeps (page-1)*perPage far from int overflow
	MaxPage = 1_000_000
)

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Page    int `form:"page"`
	PerPage int `form:"perPage"`
}

// PageRange is an inclusive [Start, End] row offset range
type PageRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Limit is the number of rows covered by the range
func (r PageRange) Limit() int {
	return r.End - r.Start + 1
}

// Probe is the single row right after the range. A row there means another page exists.
func (r PageRange) Probe() PageRange {
	return PageRange{Start: r.End + 1, End: r.End + 1}
}

// GetPaginationParams fills in defaults and caps page and perPage
func GetPaginationParams(page, perPage int) PaginationParams {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
}

// Range returns the inclusive row range of the requested page
func (p PaginationParams) Range() PageRange {
	return CalculatePageRange(p.Page, p.PerPage)
}

// CalculatePageRange maps a 1-indexed page of the given size to an inclusive offset range
func CalculatePageRange(page, size int) PageRange {
	start := (page - 1) * size
	return PageRange{Start: start, End: start + size - 1}
}
