package books

type CreateBookPayload struct {
	Title       string `json:"title" mod:"trim" validate:"required,min=1,max=255"`
	Description string `json:"description" mod:"trim" validate:"required,min=1,max=500"`
	PublishDate string `json:"publish_date" mod:"trim" validate:"required,date,after=1930-01-01"`
	AuthorID    *int   `json:"author_id" validate:"required,min=1"`
}

// UpdateBookPayload fields are all optional. Leaving out author_id, or
// sending it as null, keeps the current author.
type UpdateBookPayload struct {
	Title       *string `json:"title,omitempty" mod:"trim" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" mod:"trim" validate:"omitempty,min=1,max=500"`
	PublishDate *string `json:"publish_date,omitempty" mod:"trim" validate:"omitempty,date,after=1930-01-01"`
	AuthorID    *int    `json:"author_id,omitempty" validate:"omitempty,min=1"`
}
