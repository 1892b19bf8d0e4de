package utils

import "strconv"

// Page is a resolved page window over a result set.
type Page struct {
	Number int
	Size   int
	Total  int64
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) Meta() PaginationMeta {
	return CreatePaginationMeta(p.Number, p.Size, p.Total)
}

// ResolvePage turns a raw "page" query value into a valid page number.
// Anything that is not an integer yields the first page and numbers outside
// 1..last (including zero and negatives) yield the last page, so a page is
// always returned.
func ResolvePage(raw string, total int64, size int) Page {
	if size < 1 {
		size = 1
	}
	lastPage := int((total + int64(size) - 1) / int64(size))
	if lastPage < 1 {
		lastPage = 1
	}

	number, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		number = 1
	case number < 1, number > lastPage:
		number = lastPage
	}

	return Page{Number: number, Size: size, Total: total}
}
