package service

import (
	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/domain"
)

// Conflict names the field a duplicate was found on.
type Conflict struct {
	Field string
	Value string
}

// FindDuplicate checks a candidate against the approved suppliers.
// Matching is exact on normalized values (trim + lower-case), never fuzzy,
// and short-circuits in the order name, phone, email. Phone numbers are
// compared verbatim: no digit-stripping, so "050-1234567" and "0501234567"
// are distinct values. That mirrors the historical behavior and changing
// it would alter which submissions get blocked.
func FindDuplicate(existing []domain.Supplier, name, phone, email string) *Conflict {
	name = auth.Normalize(name)
	phone = auth.Normalize(phone)
	email = auth.Normalize(email)

	for _, s := range existing {
		if auth.Normalize(s.Name) == name {
			return &Conflict{Field: "name", Value: s.Name}
		}
	}
	if phone != "" {
		for _, s := range existing {
			if auth.Normalize(s.Phone) == phone {
				return &Conflict{Field: "phone", Value: s.Phone}
			}
		}
	}
	if email != "" {
		for _, s := range existing {
			if auth.Normalize(s.Email) == email {
				return &Conflict{Field: "email", Value: s.Email}
			}
		}
	}
	return nil
}
