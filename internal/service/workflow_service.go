package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/blob"
	"github.com/spec-kit/supplier-directory/internal/domain"
	"github.com/spec-kit/supplier-directory/internal/events"
	"github.com/spec-kit/supplier-directory/internal/repository"
	util "github.com/spec-kit/supplier-directory/pkg/util"
)

// WorkflowService manages the submission lifecycle for suppliers and
// users: pending rows await an admin decision, approval promotes them to
// the canonical table, rejection moves suppliers to the audit table and
// simply drops users.
//
// Approval is append-then-delete without a transaction. A submission is
// never silently lost: if the append fails the pending row stays pending,
// and if the delete fails the record exists in both tables until an admin
// cleans up.
type WorkflowService struct {
	suppliers    repository.SupplierRepository
	users        repository.UserRepository
	settings     repository.SettingsRepository
	uploader     blob.Uploader
	dispatcher   events.Dispatcher
	requiredDocs []string
	now          func() time.Time
}

// WorkflowDependencies bundles collaborators for the workflow engine.
type WorkflowDependencies struct {
	SupplierRepo repository.SupplierRepository
	UserRepo     repository.UserRepository
	SettingsRepo repository.SettingsRepository
	Uploader     blob.Uploader
	Dispatcher   events.Dispatcher
	// RequiredDocuments lists mandatory attachment slots; empty disables
	// the requirement.
	RequiredDocuments []string
}

// SupplierInput describes a submitted supplier candidate. Documents maps
// a named slot to its raw payload; each mandatory slot is uploaded and
// replaced by its link before persistence.
type SupplierInput struct {
	Name        string
	Fields      []string
	Phone       string
	Address     string
	PaymentTerm string
	Email       string
	ContactName string
	Documents   map[string][]byte
}

// NewWorkflowService constructs the engine.
func NewWorkflowService(deps WorkflowDependencies) *WorkflowService {
	return &WorkflowService{
		suppliers:    deps.SupplierRepo,
		users:        deps.UserRepo,
		settings:     deps.SettingsRepo,
		uploader:     deps.Uploader,
		dispatcher:   deps.Dispatcher,
		requiredDocs: deps.RequiredDocuments,
		now:          time.Now,
	}
}

// ListSuppliers returns approved suppliers, optionally filtered by a free
// search over name and business fields.
func (s *WorkflowService) ListSuppliers(ctx context.Context, search string) ([]domain.Supplier, error) {
	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	search = auth.Normalize(search)
	if search == "" {
		return suppliers, nil
	}
	filtered := make([]domain.Supplier, 0, len(suppliers))
	for _, supplier := range suppliers {
		if strings.Contains(auth.Normalize(supplier.Name), search) ||
			strings.Contains(auth.Normalize(strings.Join(supplier.Fields, ",")), search) {
			filtered = append(filtered, supplier)
		}
	}
	return filtered, nil
}

// SubmitSupplier validates a proposal and stages it in the pending table
// with the actor recorded as submitter. The specific failing reason is
// returned; nothing is persisted on validation failure.
func (s *WorkflowService) SubmitSupplier(ctx context.Context, session auth.Session, input SupplierInput) (*domain.PendingSupplier, error) {
	supplier, err := s.validateCandidate(ctx, session, input)
	if err != nil {
		return nil, err
	}

	pending := &domain.PendingSupplier{
		Supplier:    *supplier,
		SubmittedAt: s.now(),
	}
	if err := s.suppliers.CreatePending(ctx, pending); err != nil {
		return nil, err
	}

	s.publish(ctx, session, events.EventSupplierSubmitted, supplier.Name, events.SupplierSubmittedPayload{
		SupplierName: supplier.Name,
		SubmittedBy:  supplier.SubmittedBy,
	})
	return pending, nil
}

// SubmitSupplierDirect runs the same validation as SubmitSupplier but
// writes straight to the canonical table, skipping the pending state.
// Admin only.
func (s *WorkflowService) SubmitSupplierDirect(ctx context.Context, session auth.Session, input SupplierInput) (*domain.Supplier, error) {
	if !session.IsAdmin() {
		return nil, util.NewForbidden("admin role required")
	}
	supplier, err := s.validateCandidate(ctx, session, input)
	if err != nil {
		return nil, err
	}
	if err := s.suppliers.Create(ctx, supplier); err != nil {
		return nil, err
	}

	s.publish(ctx, session, events.EventSupplierSubmitted, supplier.Name, events.SupplierSubmittedPayload{
		SupplierName: supplier.Name,
		SubmittedBy:  supplier.SubmittedBy,
		Direct:       true,
	})
	return supplier, nil
}

// ListPendingSuppliers returns proposals in natural append order.
func (s *WorkflowService) ListPendingSuppliers(ctx context.Context) ([]domain.PendingSupplier, error) {
	return s.suppliers.ListPending(ctx)
}

// ApproveSupplier promotes a pending proposal into the canonical table,
// then deletes the pending row keyed by supplier name.
func (s *WorkflowService) ApproveSupplier(ctx context.Context, session auth.Session, name string) (*domain.Supplier, error) {
	if !session.IsAdmin() {
		return nil, util.NewForbidden("admin role required")
	}
	pending, err := s.suppliers.FindPending(ctx, name)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, util.NewNotFound("pending supplier", map[string]any{"name": name})
	}

	// the canonical table may have gained a colliding row since
	// submission, so uniqueness is re-checked before the promotion
	existing, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	if conflict := FindDuplicate(existing, pending.Name, pending.Phone, pending.Email); conflict != nil {
		return nil, util.NewConflict("duplicate supplier "+conflict.Field, map[string]any{"field": conflict.Field})
	}

	supplier := pending.Supplier
	if err := s.suppliers.Create(ctx, &supplier); err != nil {
		return nil, err
	}
	// delete after a successful append so a submission is never lost; a
	// partial failure leaves the record in both tables
	if _, err := s.suppliers.DeletePending(ctx, pending.Name); err != nil {
		return nil, err
	}

	s.publish(ctx, session, events.EventSupplierApproved, supplier.Name, events.SupplierDecisionPayload{
		SupplierName: supplier.Name,
		SubmittedBy:  supplier.SubmittedBy,
	})
	return &supplier, nil
}

// RejectSupplier snapshots the pending proposal into the rejection-audit
// table with a timestamp, then deletes the pending row.
func (s *WorkflowService) RejectSupplier(ctx context.Context, session auth.Session, name string) error {
	if !session.IsAdmin() {
		return util.NewForbidden("admin role required")
	}
	pending, err := s.suppliers.FindPending(ctx, name)
	if err != nil {
		return err
	}
	if pending == nil {
		return util.NewNotFound("pending supplier", map[string]any{"name": name})
	}

	rejected := &domain.RejectedSupplier{
		PendingSupplier: *pending,
		RejectedAt:      s.now(),
	}
	if err := s.suppliers.CreateRejected(ctx, rejected); err != nil {
		return err
	}
	if _, err := s.suppliers.DeletePending(ctx, pending.Name); err != nil {
		return err
	}

	s.publish(ctx, session, events.EventSupplierRejected, pending.Name, events.SupplierDecisionPayload{
		SupplierName: pending.Name,
		SubmittedBy:  pending.SubmittedBy,
	})
	return nil
}

// ListRejectedForSubmitter returns the caller's rejected submissions.
// Matching is approximate: the submitter's display name or email as a
// substring of the recorded submittedBy value.
func (s *WorkflowService) ListRejectedForSubmitter(ctx context.Context, session auth.Session) ([]domain.RejectedSupplier, error) {
	rejected, err := s.suppliers.ListRejected(ctx)
	if err != nil {
		return nil, err
	}
	name := auth.Normalize(session.Name)
	email := auth.Normalize(session.Username)

	mine := make([]domain.RejectedSupplier, 0, len(rejected))
	for _, r := range rejected {
		submitter := auth.Normalize(r.SubmittedBy)
		if submitter == "" {
			continue
		}
		if (name != "" && strings.Contains(submitter, name)) ||
			(email != "" && strings.Contains(submitter, email)) {
			mine = append(mine, r)
		}
	}
	return mine, nil
}

// BulkDeleteResult reports the outcome of a bulk removal per category:
// rows actually deleted, names with no matching row, and names whose
// removal hit a store failure.
type BulkDeleteResult struct {
	Requested int
	Deleted   int
	Missing   int
	Failed    int
}

// BulkDeleteSuppliers removes canonical suppliers one at a time,
// tolerating individual misses and failures. Not atomic; the result
// tells an admin whether leftovers were absent rows or a backend
// problem.
func (s *WorkflowService) BulkDeleteSuppliers(ctx context.Context, session auth.Session, names []string) (BulkDeleteResult, error) {
	if !session.IsAdmin() {
		return BulkDeleteResult{}, util.NewForbidden("admin role required")
	}
	result := BulkDeleteResult{Requested: len(names)}
	for _, name := range names {
		ok, err := s.suppliers.Delete(ctx, name)
		switch {
		case err != nil:
			result.Failed++
		case ok:
			result.Deleted++
		default:
			result.Missing++
		}
	}

	s.publish(ctx, session, events.EventSuppliersDeleted, "", events.SuppliersDeletedPayload{
		Requested: result.Requested,
		Deleted:   result.Deleted,
		Missing:   result.Missing,
		Failed:    result.Failed,
	})
	return result, nil
}

// ListPendingUsers returns signups in natural append order.
func (s *WorkflowService) ListPendingUsers(ctx context.Context) ([]domain.PendingUser, error) {
	return s.users.ListPending(ctx)
}

// ApproveUser promotes a pending signup to a full account with the user
// role, reusing the stored hash, then deletes the pending row.
func (s *WorkflowService) ApproveUser(ctx context.Context, session auth.Session, username string) (*domain.User, error) {
	if !session.IsAdmin() {
		return nil, util.NewForbidden("admin role required")
	}
	pending, err := s.users.FindPending(ctx, username)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, util.NewNotFound("pending user", map[string]any{"username": username})
	}

	user := &domain.User{
		Username:     auth.Normalize(pending.Username),
		PasswordHash: pending.PasswordHash,
		Role:         domain.RoleUser,
		Name:         pending.Name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if _, err := s.users.DeletePending(ctx, pending.Username); err != nil {
		return nil, err
	}

	s.publish(ctx, session, events.EventUserApproved, user.Username, events.UserDecisionPayload{
		Username: user.Username,
		Name:     user.Name,
	})
	return user, nil
}

// RejectUser deletes the pending signup. No rejection audit is kept for
// users.
func (s *WorkflowService) RejectUser(ctx context.Context, session auth.Session, username string) error {
	if !session.IsAdmin() {
		return util.NewForbidden("admin role required")
	}
	deleted, err := s.users.DeletePending(ctx, username)
	if err != nil {
		return err
	}
	if !deleted {
		return util.NewNotFound("pending user", map[string]any{"username": username})
	}

	s.publish(ctx, session, events.EventUserRejected, auth.Normalize(username), events.UserDecisionPayload{
		Username: auth.Normalize(username),
	})
	return nil
}

// validateCandidate runs field presence, syntax, duplicate and attachment
// checks and resolves document payloads to uploaded links.
func (s *WorkflowService) validateCandidate(ctx context.Context, session auth.Session, input SupplierInput) (*domain.Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, util.NewValidationError("supplier name is required", map[string]any{"field": "name"})
	}
	if len(input.Fields) == 0 {
		return nil, util.NewValidationError("at least one business field is required", map[string]any{"field": "fields"})
	}
	if strings.TrimSpace(input.Phone) == "" {
		return nil, util.NewValidationError("phone is required", map[string]any{"field": "phone"})
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, util.NewValidationError("address is required", map[string]any{"field": "address"})
	}
	if strings.TrimSpace(input.PaymentTerm) == "" {
		return nil, util.NewValidationError("payment term is required", map[string]any{"field": "paymentTerm"})
	}
	if input.Email != "" && !auth.ValidateEmail(strings.TrimSpace(input.Email)) {
		return nil, util.NewValidationError("invalid email syntax", map[string]any{"field": "email"})
	}

	lists, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(lists.PaymentTerms) > 0 && !contains(lists.PaymentTerms, input.PaymentTerm) {
		return nil, util.NewValidationError("unknown payment term", map[string]any{"field": "paymentTerm"})
	}

	existing, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	if conflict := FindDuplicate(existing, name, input.Phone, input.Email); conflict != nil {
		return nil, util.NewConflict("duplicate supplier "+conflict.Field, map[string]any{"field": conflict.Field})
	}

	links, err := s.resolveDocuments(ctx, name, input.Documents)
	if err != nil {
		return nil, err
	}

	submittedBy := session.Name
	if submittedBy == "" {
		submittedBy = session.Username
	}

	return &domain.Supplier{
		Name:        name,
		Fields:      trimAll(input.Fields),
		Phone:       strings.TrimSpace(input.Phone),
		Address:     strings.TrimSpace(input.Address),
		PaymentTerm: strings.TrimSpace(input.PaymentTerm),
		Email:       strings.TrimSpace(input.Email),
		ContactName: strings.TrimSpace(input.ContactName),
		SubmittedBy: submittedBy,
		Documents:   links,
	}, nil
}

// resolveDocuments enforces the mandatory slots and uploads each payload,
// returning slot-to-link mappings for persistence.
func (s *WorkflowService) resolveDocuments(ctx context.Context, supplierName string, docs map[string][]byte) (map[string]string, error) {
	for _, slot := range s.requiredDocs {
		if len(docs[slot]) == 0 {
			return nil, util.NewValidationError("missing mandatory document", map[string]any{"field": slot})
		}
	}
	if len(docs) == 0 {
		return nil, nil
	}

	links := make(map[string]string, len(docs))
	for slot, payload := range docs {
		if len(payload) == 0 {
			continue
		}
		link, err := s.uploader.Upload(ctx, supplierName+"-"+slot, payload)
		if err != nil {
			return nil, util.NewBackendUnavailable(err)
		}
		links[slot] = link
	}
	return links, nil
}

func (s *WorkflowService) publish(ctx context.Context, session auth.Session, eventType events.EventType, subject string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Actor:     events.Actor{Username: session.Username, Role: session.Role},
		Timestamp: s.now(),
		Payload:   payload,
	})
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
