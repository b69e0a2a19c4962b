package dto

import "github.com/spec-kit/supplier-directory/internal/domain"

// SettingsResponse carries both controlled vocabulary lists.
type SettingsResponse struct {
	Fields       []string `json:"fields"`
	PaymentTerms []string `json:"payment_terms"`
}

// NewSettingsResponse converts the domain lists.
func NewSettingsResponse(lists domain.SettingsLists) SettingsResponse {
	return SettingsResponse{Fields: lists.Fields, PaymentTerms: lists.PaymentTerms}
}

// SettingsEntryRequest payload for list add/remove operations.
type SettingsEntryRequest struct {
	Value string `json:"value"`
}

// OnlineResponse reports the currently online users.
type OnlineResponse struct {
	Count int      `json:"count"`
	Names []string `json:"names"`
}
