package dto

import "strings"

type ContactRequest struct {
	Name     string `json:"name"     validate:"required,max=200"`
	Email    string `json:"email"    validate:"required,email"`
	Interest string `json:"interest" validate:"max=100"`
	Message  string `json:"message"  validate:"required,max=5000"`
}

func (r *ContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Interest = strings.TrimSpace(r.Interest)
	r.Message = strings.TrimSpace(r.Message)
}
