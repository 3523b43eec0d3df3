package forms

import (
	"net/mail"
	"strings"
)

// QuoteForm is the public contact/quote request form.
type QuoteForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type QuoteData struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

func (f QuoteForm) Validate() (QuoteData, FieldErrors) {
	errs := FieldErrors{}

	name := strings.TrimSpace(f.Name)
	if name == "" {
		errs.add("name", "Name is required")
	}
	if runeLen(name) > 100 {
		errs.add("name", "Name is too long")
	}

	email := strings.TrimSpace(f.Email)
	if email == "" {
		errs.add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.add("email", "Invalid email")
	}
	if runeLen(email) > 255 {
		errs.add("email", "Email is too long")
	}

	phone := strings.TrimSpace(f.Phone)
	if phone == "" {
		errs.add("phone", "Phone is required")
	}
	if runeLen(phone) > 20 {
		errs.add("phone", "Phone is too long")
	}

	subject := strings.TrimSpace(f.Subject)
	if subject == "" {
		errs.add("subject", "Subject is required")
	}
	if runeLen(subject) > 200 {
		errs.add("subject", "Subject is too long")
	}

	message := strings.TrimSpace(f.Message)
	if message == "" {
		errs.add("message", "Message is required")
	}
	if runeLen(message) > 2000 {
		errs.add("message", "Message is too long")
	}

	if errs.Any() {
		return QuoteData{}, errs
	}

	return QuoteData{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Subject: subject,
		Message: message,
	}, nil
}
