package repository

import (
	"context"

	"github.com/spec-kit/supplier-directory/internal/domain"
	"github.com/spec-kit/supplier-directory/internal/store"
)

// The settings table stores the two controlled vocabularies as parallel
// columns of one table. The shorter list is padded with empty-string
// placeholders, a storage-format artifact rather than a semantic
// relationship, so reads strip blanks and writes only ever touch one
// column.
const (
	colListFields       = "fields"
	colListPaymentTerms = "paymentTerms"
)

// SettingsRepository persists the controlled vocabulary lists.
type SettingsRepository interface {
	Load(ctx context.Context) (domain.SettingsLists, error)
	// AddEntry places a value in the named list, reusing the first blank
	// placeholder row before growing the table.
	AddEntry(ctx context.Context, list domain.SettingsList, value string) error
	// RemoveEntry removes the first exact match from the named list,
	// shifting later values up so the column stays gap-free. Returns
	// false when the value is absent.
	RemoveEntry(ctx context.Context, list domain.SettingsList, value string) (bool, error)
}

type settingsRepository struct {
	store store.RecordStore
}

// NewSettingsRepository returns a RecordStore-backed implementation.
func NewSettingsRepository(recordStore store.RecordStore) SettingsRepository {
	return &settingsRepository{store: recordStore}
}

func columnFor(list domain.SettingsList) string {
	if list == domain.ListPaymentTerms {
		return colListPaymentTerms
	}
	return colListFields
}

func otherColumn(col string) string {
	if col == colListFields {
		return colListPaymentTerms
	}
	return colListFields
}

func (r *settingsRepository) Load(ctx context.Context) (domain.SettingsLists, error) {
	recs, err := r.store.List(ctx, TableSettings)
	if err != nil {
		return domain.SettingsLists{}, wrapStoreErr(err)
	}
	var lists domain.SettingsLists
	for _, rec := range recs {
		if v := rec[colListFields]; v != "" {
			lists.Fields = append(lists.Fields, v)
		}
		if v := rec[colListPaymentTerms]; v != "" {
			lists.PaymentTerms = append(lists.PaymentTerms, v)
		}
	}
	return lists, nil
}

func (r *settingsRepository) AddEntry(ctx context.Context, list domain.SettingsList, value string) error {
	col := columnFor(list)
	recs, err := r.store.List(ctx, TableSettings)
	if err != nil {
		return wrapStoreErr(err)
	}
	for i, rec := range recs {
		if rec[col] == "" {
			return wrapStoreErr(r.store.UpdateCell(ctx, TableSettings, rowIndex(i), col, value))
		}
	}
	rec := store.Record{col: value, otherColumn(col): ""}
	return wrapStoreErr(r.store.Append(ctx, TableSettings, rec))
}

func (r *settingsRepository) RemoveEntry(ctx context.Context, list domain.SettingsList, value string) (bool, error) {
	col := columnFor(list)
	recs, err := r.store.List(ctx, TableSettings)
	if err != nil {
		return false, wrapStoreErr(err)
	}

	match := -1
	for i, rec := range recs {
		if rec[col] == value {
			match = i
			break
		}
	}
	if match < 0 {
		return false, nil
	}

	// shift the column up over the removed slot, blanking the tail; rows
	// stay in place so the parallel column is untouched
	for i := match; i < len(recs); i++ {
		next := ""
		if i+1 < len(recs) {
			next = recs[i+1][col]
		}
		if recs[i][col] == next {
			continue
		}
		if err := r.store.UpdateCell(ctx, TableSettings, rowIndex(i), col, next); err != nil {
			return false, wrapStoreErr(err)
		}
	}
	return true, nil
}
