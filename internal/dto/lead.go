package dto

// CheckRequest asks whether an email or phone is already known to the CRM.
// Email wins when both are supplied.
type CheckRequest struct {
	Email string `json:"email" validate:"required_without=Phone"`
	Phone string `json:"phone"`
}

// CheckResponse is {found:false} or {found:true, where, id}.
type CheckResponse struct {
	Found bool   `json:"found"`
	Where string `json:"where,omitempty"`
	ID    any    `json:"id,omitempty"`
}

// CreateRequest carries the three fields collected by the form.
type CreateRequest struct {
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// CreateResponse is returned once the CRM accepted the lead.
type CreateResponse struct {
	Success bool   `json:"success"`
	ID      any    `json:"id"`
	URL     string `json:"url"`
}

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}
