package authors

type CreateAuthorPayload struct {
	Name      string `json:"name" mod:"trim" validate:"required,min=1,max=255"`
	Bio       string `json:"bio" mod:"trim" validate:"required,min=1,max=500"`
	BirthDate string `json:"birth_date" mod:"trim" validate:"required,date,after=1970-01-01"`
}

// UpdateAuthorPayload fields are all optional. A field left out of the body
// keeps its persisted value.
type UpdateAuthorPayload struct {
	Name      *string `json:"name,omitempty" mod:"trim" validate:"omitempty,min=1,max=255"`
	Bio       *string `json:"bio,omitempty" mod:"trim" validate:"omitempty,min=1,max=500"`
	BirthDate *string `json:"birth_date,omitempty" mod:"trim" validate:"omitempty,date,after=1970-01-01"`
}
