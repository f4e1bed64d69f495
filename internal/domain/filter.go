package domain

// TranslationFilter selects translations for the admin listing.
// LangCode is required; ContentType and ManualOnly narrow the result.
type TranslationFilter struct {
	LangCode    string
	ContentType *string
	ManualOnly  bool
	Page        int
	Limit       int
}

// Offset converts the 1-based page into a row offset.
func (f TranslationFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit
}

// Pagination describes one page of a listing result.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes page math for a listing result.
func NewPagination(page, limit, total int) Pagination {
	if page < 1 {
		page = 1
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}
