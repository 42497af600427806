package entities

// Page is one slice of a listing. HasNextPage is derived by probing for a
// single row past the end of the page rather than counting.
type Page[T any] struct {
	List        []T  `json:"list"`
	HasNextPage bool `json:"hasNextPage"`
}

// EmptyPage returns a page with a non-nil empty list
func EmptyPage[T any]() *Page[T] {
	return &Page[T]{List: []T{}}
}
