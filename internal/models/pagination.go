package models

// PageMeta describes the pagination window of a listing response. Total is
// the count of all rows matching the filter predicate, independent of the
// requested page.
type PageMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
