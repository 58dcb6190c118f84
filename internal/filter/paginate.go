package filter

// Page is one 1-indexed page of a larger sequence.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices items into pages of pageSize. A page outside 1..TotalPages, or a
// non-positive pageSize, yields an empty page rather than an error.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(items),
	}
	if pageSize <= 0 {
		return p
	}

	p.TotalPages = (len(items) + pageSize - 1) / pageSize
	if page < 1 || page > p.TotalPages {
		return p
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	p.Items = items[start:end]
	return p
}
