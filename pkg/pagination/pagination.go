package pagination

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Criteria is the requested window into a listing.
type Criteria struct {
	Page     int
	PageSize int
}

// NewCriteria returns a Criteria, falling back to the defaults for any value
// below 1.
func NewCriteria(page, pageSize int) Criteria {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Criteria{Page: page, PageSize: pageSize}
}

func (c Criteria) Limit() int {
	return c.PageSize
}

func (c Criteria) Offset() int {
	return (c.Page - 1) * c.PageSize
}

// Metadata describes a page of results. The zero value is the "no pages"
// result and marshals to an empty JSON object.
type Metadata struct {
	CurrentPage  int `json:"current_page,omitempty"`
	PageSize     int `json:"page_size,omitempty"`
	FirstPage    int `json:"first_page,omitempty"`
	LastPage     int `json:"last_page,omitempty"`
	TotalRecords int `json:"total_records,omitempty"`
}

func (m Metadata) IsEmpty() bool {
	return m == Metadata{}
}

// CalculateMetadata computes the page metadata for a listing with
// totalRecords rows. Zero rows always yields empty metadata.
func CalculateMetadata(totalRecords, page, pageSize int) Metadata {
	if totalRecords == 0 {
		return Metadata{}
	}

	return Metadata{
		CurrentPage:  page,
		PageSize:     pageSize,
		FirstPage:    1,
		LastPage:     (totalRecords + pageSize - 1) / pageSize,
		TotalRecords: totalRecords,
	}
}
