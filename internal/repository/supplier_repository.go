package repository

import (
	"context"
	"strings"

	"github.com/spec-kit/supplier-directory/internal/domain"
	"github.com/spec-kit/supplier-directory/internal/store"
)

// Column names of the supplier tables. Document links live in columns
// prefixed docLinkPrefix, one per named slot.
const (
	colSupplierName = "name"
	colFields       = "fields"
	colPhone        = "phone"
	colAddress      = "address"
	colPaymentTerm  = "paymentTerm"
	colEmail        = "email"
	colContactName  = "contactName"
	colSubmittedBy  = "submittedBy"
	colRejectedAt   = "rejectedAt"

	docLinkPrefix = "doc_"
)

// SupplierRepository defines persistence access for the canonical,
// pending and rejection-audit supplier tables.
type SupplierRepository interface {
	List(ctx context.Context) ([]domain.Supplier, error)
	Create(ctx context.Context, supplier *domain.Supplier) error
	// Delete removes the first canonical row matching the name exactly.
	Delete(ctx context.Context, name string) (bool, error)

	ListPending(ctx context.Context) ([]domain.PendingSupplier, error)
	// FindPending returns nil when no pending row matches the name.
	FindPending(ctx context.Context, name string) (*domain.PendingSupplier, error)
	CreatePending(ctx context.Context, pending *domain.PendingSupplier) error
	DeletePending(ctx context.Context, name string) (bool, error)

	ListRejected(ctx context.Context) ([]domain.RejectedSupplier, error)
	CreateRejected(ctx context.Context, rejected *domain.RejectedSupplier) error
}

type supplierRepository struct {
	store store.RecordStore
}

// NewSupplierRepository returns a RecordStore-backed implementation.
func NewSupplierRepository(recordStore store.RecordStore) SupplierRepository {
	return &supplierRepository{store: recordStore}
}

func (r *supplierRepository) List(ctx context.Context) ([]domain.Supplier, error) {
	recs, err := r.store.List(ctx, TableSuppliers)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	suppliers := make([]domain.Supplier, 0, len(recs))
	for _, rec := range recs {
		suppliers = append(suppliers, supplierFromRecord(rec))
	}
	return suppliers, nil
}

func (r *supplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	return wrapStoreErr(r.store.Append(ctx, TableSuppliers, supplierToRecord(supplier)))
}

func (r *supplierRepository) Delete(ctx context.Context, name string) (bool, error) {
	deleted, err := r.store.DeleteWhere(ctx, TableSuppliers, colSupplierName, name)
	return deleted, wrapStoreErr(err)
}

func (r *supplierRepository) ListPending(ctx context.Context) ([]domain.PendingSupplier, error) {
	recs, err := r.store.List(ctx, TablePendingSuppliers)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	pending := make([]domain.PendingSupplier, 0, len(recs))
	for _, rec := range recs {
		pending = append(pending, pendingSupplierFromRecord(rec))
	}
	return pending, nil
}

func (r *supplierRepository) FindPending(ctx context.Context, name string) (*domain.PendingSupplier, error) {
	pending, err := r.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pending {
		if pending[i].Name == name {
			return &pending[i], nil
		}
	}
	return nil, nil
}

func (r *supplierRepository) CreatePending(ctx context.Context, pending *domain.PendingSupplier) error {
	rec := supplierToRecord(&pending.Supplier)
	rec[colSubmittedAt] = formatTime(pending.SubmittedAt)
	return wrapStoreErr(r.store.Append(ctx, TablePendingSuppliers, rec))
}

func (r *supplierRepository) DeletePending(ctx context.Context, name string) (bool, error) {
	deleted, err := r.store.DeleteWhere(ctx, TablePendingSuppliers, colSupplierName, name)
	return deleted, wrapStoreErr(err)
}

func (r *supplierRepository) ListRejected(ctx context.Context) ([]domain.RejectedSupplier, error) {
	recs, err := r.store.List(ctx, TableRejectedSuppliers)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	rejected := make([]domain.RejectedSupplier, 0, len(recs))
	for _, rec := range recs {
		rejected = append(rejected, domain.RejectedSupplier{
			PendingSupplier: pendingSupplierFromRecord(rec),
			RejectedAt:      parseTime(rec[colRejectedAt]),
		})
	}
	return rejected, nil
}

func (r *supplierRepository) CreateRejected(ctx context.Context, rejected *domain.RejectedSupplier) error {
	rec := supplierToRecord(&rejected.Supplier)
	rec[colSubmittedAt] = formatTime(rejected.SubmittedAt)
	rec[colRejectedAt] = formatTime(rejected.RejectedAt)
	return wrapStoreErr(r.store.Append(ctx, TableRejectedSuppliers, rec))
}

func supplierFromRecord(rec store.Record) domain.Supplier {
	supplier := domain.Supplier{
		Name:        rec[colSupplierName],
		Phone:       rec[colPhone],
		Address:     rec[colAddress],
		PaymentTerm: rec[colPaymentTerm],
		Email:       rec[colEmail],
		ContactName: rec[colContactName],
		SubmittedBy: rec[colSubmittedBy],
	}
	if raw := rec[colFields]; raw != "" {
		for _, f := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(f); trimmed != "" {
				supplier.Fields = append(supplier.Fields, trimmed)
			}
		}
	}
	for col, val := range rec {
		if strings.HasPrefix(col, docLinkPrefix) && val != "" {
			if supplier.Documents == nil {
				supplier.Documents = make(map[string]string)
			}
			supplier.Documents[strings.TrimPrefix(col, docLinkPrefix)] = val
		}
	}
	return supplier
}

func pendingSupplierFromRecord(rec store.Record) domain.PendingSupplier {
	return domain.PendingSupplier{
		Supplier:    supplierFromRecord(rec),
		SubmittedAt: parseTime(rec[colSubmittedAt]),
	}
}

func supplierToRecord(supplier *domain.Supplier) store.Record {
	rec := store.Record{
		colSupplierName: supplier.Name,
		colFields:       strings.Join(supplier.Fields, ","),
		colPhone:        supplier.Phone,
		colAddress:      supplier.Address,
		colPaymentTerm:  supplier.PaymentTerm,
		colEmail:        supplier.Email,
		colContactName:  supplier.ContactName,
		colSubmittedBy:  supplier.SubmittedBy,
	}
	for slot, link := range supplier.Documents {
		rec[docLinkPrefix+slot] = link
	}
	return rec
}
