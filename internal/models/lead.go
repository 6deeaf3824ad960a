package models

import "time"

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Budget  string `json:"budget"`
	Service string `json:"service"`
	// Honeypot. Humans never see this field; bots fill it.
	Company string `json:"company"`
}

type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Message   string    `json:"message"`
	Budget    string    `json:"budget,omitempty"`
	Service   string    `json:"service,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
