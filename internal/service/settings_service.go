package service

import (
	"context"
	"strings"

	"github.com/spec-kit/supplier-directory/internal/domain"
	"github.com/spec-kit/supplier-directory/internal/repository"
	util "github.com/spec-kit/supplier-directory/pkg/util"
)

// SettingsService manages the two controlled vocabulary lists.
type SettingsService struct {
	settings repository.SettingsRepository
}

// NewSettingsService builds the service.
func NewSettingsService(settings repository.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// Load returns both lists with storage placeholders stripped.
func (s *SettingsService) Load(ctx context.Context) (domain.SettingsLists, error) {
	return s.settings.Load(ctx)
}

// Seed populates the payment-term vocabulary on a fresh deployment.
// Existing values are left alone.
func (s *SettingsService) Seed(ctx context.Context) error {
	lists, err := s.settings.Load(ctx)
	if err != nil {
		return err
	}
	if len(lists.PaymentTerms) > 0 {
		return nil
	}
	for _, term := range domain.DefaultPaymentTerms {
		if err := s.settings.AddEntry(ctx, domain.ListPaymentTerms, term); err != nil {
			return err
		}
	}
	return nil
}

// AddEntry appends a value to the named list. Blank values and exact
// duplicates (case-sensitive) are silent no-ops.
func (s *SettingsService) AddEntry(ctx context.Context, list domain.SettingsList, value string) error {
	if !list.Valid() {
		return util.NewValidationError("unknown settings list", map[string]any{"field": "list"})
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	lists, err := s.settings.Load(ctx)
	if err != nil {
		return err
	}
	current := lists.Fields
	if list == domain.ListPaymentTerms {
		current = lists.PaymentTerms
	}
	for _, v := range current {
		if v == value {
			return nil
		}
	}
	return s.settings.AddEntry(ctx, list, value)
}

// RemoveEntry removes the first exact match from the named list.
func (s *SettingsService) RemoveEntry(ctx context.Context, list domain.SettingsList, value string) error {
	if !list.Valid() {
		return util.NewValidationError("unknown settings list", map[string]any{"field": "list"})
	}
	removed, err := s.settings.RemoveEntry(ctx, list, value)
	if err != nil {
		return err
	}
	if !removed {
		return util.NewNotFound("settings entry", map[string]any{"list": string(list), "value": value})
	}
	return nil
}
