package request

// PageRequest selects one page of a listing whose page size the server
// fixes.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest clamps page to at least 1.
func NewPageRequest(page, size int) PageRequest {
	if page < 1 {
		page = 1
	}
	return PageRequest{Page: page, Size: size}
}

func (p PageRequest) Limit() int {
	if p.Size < 1 {
		return 1
	}
	return p.Size
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit()
}
