package model

// LeadRequest is the body of POST /api/lead.
type LeadRequest struct {
	BusinessName string `json:"business_name"`
	Website      string `json:"website"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Message      string `json:"message,omitempty"`
}

// LeadResponse is the body returned by POST /api/lead.
type LeadResponse struct {
	Success bool `json:"success"`
}
