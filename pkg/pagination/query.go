package pagination

// Query is the page selection accepted by listing endpoints. The fields are
// pointers so an explicit 0 is rejected rather than replaced by a default.
type Query struct {
	Page     *int `query:"page" json:"page,omitempty" validate:"omitempty,min=1"`
	PageSize *int `query:"page_size" json:"page_size,omitempty" validate:"omitempty,min=1,max=100"`
}

func (q Query) Criteria() Criteria {
	page, pageSize := DefaultPage, DefaultPageSize
	if q.Page != nil {
		page = *q.Page
	}
	if q.PageSize != nil {
		pageSize = *q.PageSize
	}
	return NewCriteria(page, pageSize)
}
