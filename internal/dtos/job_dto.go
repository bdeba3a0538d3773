package dtos

type JobCreateRequest struct {
	Title  string `json:"title" binding:"required"`
	Salary *int   `json:"salary" binding:"required"`

	// Optional Fields
	Equity *float64 `json:"equity"`

	// The owning company always comes from the authenticated token,
	// never from the body.
}

type JobPatchRequest struct {
	Title  *string  `json:"title"`
	Salary *int     `json:"salary"`
	Equity *float64 `json:"equity"`
}
