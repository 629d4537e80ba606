package models

// ContactRequest is the contact form payload.
type ContactRequest struct {
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}
