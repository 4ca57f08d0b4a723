package response

type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta leaves NextPage/PreviousPage nil at the edges.
type PaginationMeta struct {
	Total        int64 `json:"total"`
	Page         int   `json:"page"`
	PerPage      int   `json:"per_page"`
	TotalPages   int   `json:"total_pages"`
	NextPage     *int  `json:"next_page"`
	PreviousPage *int  `json:"previous_page"`
}

func NewPaginatedResponse[T any](data []T, page, perPage int, total int64) *PaginatedResponse[T] {
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}

	meta := PaginationMeta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
	if page < totalPages {
		next := page + 1
		meta.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		meta.PreviousPage = &prev
	}

	if data == nil {
		data = []T{}
	}

	return &PaginatedResponse[T]{
		Data:       data,
		Pagination: meta,
	}
}
