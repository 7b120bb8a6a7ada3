package pagination

import "fmt"

// Page is a 1-based page request. Size above the caller-supplied
// maximum is clamped, never rejected.
type Page struct {
	Number int
	Size   int
}

// Meta describes the full result set a page was cut from.
type Meta struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Size       int  `json:"size"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Normalize validates a page request and applies defaults and the clamp.
func Normalize(p Page, defaultSize, maxSize int) (Page, error) {
	if p.Number < 0 || p.Size < 0 {
		return Page{}, fmt.Errorf("page number and size cannot be negative")
	}
	if p.Number == 0 {
		p.Number = 1
	}
	if p.Size == 0 {
		p.Size = defaultSize
	}
	if maxSize > 0 && p.Size > maxSize {
		p.Size = maxSize
	}
	return p, nil
}

func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// BuildMeta derives page metadata from the total row count. The count
// and the row window come from the same filter, so the meta stays
// consistent with the returned page.
func BuildMeta(p Page, total int) Meta {
	if total < 0 {
		total = 0
	}

	totalPages := 0
	if p.Size > 0 {
		totalPages = (total + p.Size - 1) / p.Size
	}

	return Meta{
		Total:      total,
		Page:       p.Number,
		Size:       p.Size,
		TotalPages: totalPages,
		HasNext:    p.Number < totalPages,
		HasPrev:    p.Number > 1 && total > 0,
	}
}
