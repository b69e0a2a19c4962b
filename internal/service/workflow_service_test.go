package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/domain"
	"github.com/spec-kit/supplier-directory/internal/events"
	"github.com/spec-kit/supplier-directory/internal/repository"
	"github.com/spec-kit/supplier-directory/internal/store"
	util "github.com/spec-kit/supplier-directory/pkg/util"
)

var (
	adminSession = auth.Session{Username: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin}
	userSession  = auth.Session{Username: "dana@example.com", Name: "Dana Levi", Role: domain.RoleUser}
)

type fakeUploader struct {
	uploads int
}

func (u *fakeUploader) Upload(_ context.Context, name string, _ []byte) (string, error) {
	u.uploads++
	return "https://files.local/" + name, nil
}

type workflowEnv struct {
	workflow  *WorkflowService
	suppliers repository.SupplierRepository
	users     repository.UserRepository
	uploader  *fakeUploader
	store     *store.MemoryStore
}

func newWorkflowEnv(t *testing.T, requiredDocs ...string) *workflowEnv {
	t.Helper()
	mem := store.NewMemoryStore()
	uploader := &fakeUploader{}
	supplierRepo := repository.NewSupplierRepository(mem)
	userRepo := repository.NewUserRepository(mem)

	workflow := NewWorkflowService(WorkflowDependencies{
		SupplierRepo:      supplierRepo,
		UserRepo:          userRepo,
		SettingsRepo:      repository.NewSettingsRepository(mem),
		Uploader:          uploader,
		Dispatcher:        events.NewInMemoryDispatcher(nil),
		RequiredDocuments: requiredDocs,
	})
	return &workflowEnv{
		workflow:  workflow,
		suppliers: supplierRepo,
		users:     userRepo,
		uploader:  uploader,
		store:     mem,
	}
}

func validInput() SupplierInput {
	return SupplierInput{
		Name:        "Acme",
		Fields:      []string{"Plumbing"},
		Phone:       "0501234567",
		Address:     "Tel Aviv",
		PaymentTerm: "שוטף+30",
		Email:       "acme@example.com",
		ContactName: "Avi",
	}
}

func TestSubmitSupplierValidationFailuresAreSpecific(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	cases := []struct {
		mutate func(*SupplierInput)
		field  string
	}{
		{func(in *SupplierInput) { in.Name = "  " }, "name"},
		{func(in *SupplierInput) { in.Fields = nil }, "fields"},
		{func(in *SupplierInput) { in.Phone = "" }, "phone"},
		{func(in *SupplierInput) { in.Address = "" }, "address"},
		{func(in *SupplierInput) { in.PaymentTerm = "" }, "paymentTerm"},
		{func(in *SupplierInput) { in.Email = "not-an-email" }, "email"},
	}
	for _, tc := range cases {
		input := validInput()
		tc.mutate(&input)

		_, err := env.workflow.SubmitSupplier(ctx, userSession, input)
		require.Error(t, err, "field %s", tc.field)
		domainErr := util.ToDomainError(err)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		assert.Equal(t, tc.field, domainErr.Details["field"])
	}

	// nothing persisted on validation failure
	pending, err := env.suppliers.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSubmitSupplierRecordsSubmitter(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	pending, err := env.workflow.SubmitSupplier(ctx, userSession, validInput())
	require.NoError(t, err)
	assert.Equal(t, "Dana Levi", pending.SubmittedBy)
	assert.False(t, pending.SubmittedAt.IsZero())

	staged, err := env.suppliers.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, staged, 1)
	assert.Equal(t, "Acme", staged[0].Name)
}

func TestApproveSupplierMovesRecord(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	_, err := env.workflow.SubmitSupplier(ctx, userSession, validInput())
	require.NoError(t, err)

	approved, err := env.workflow.ApproveSupplier(ctx, adminSession, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", approved.Name)

	suppliers, err := env.suppliers.List(ctx)
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, []string{"Plumbing"}, suppliers[0].Fields)
	assert.Equal(t, "0501234567", suppliers[0].Phone)
	assert.Equal(t, "Dana Levi", suppliers[0].SubmittedBy)

	pending, err := env.suppliers.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestApproveSupplierRechecksUniqueness(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	// both submissions pass because the canonical table is still empty
	_, err := env.workflow.SubmitSupplier(ctx, userSession, validInput())
	require.NoError(t, err)
	_, err = env.workflow.SubmitSupplier(ctx, userSession, validInput())
	require.NoError(t, err)

	_, err = env.workflow.ApproveSupplier(ctx, adminSession, "Acme")
	require.NoError(t, err)

	// approving the twin must not create a second canonical "Acme"
	_, err = env.workflow.ApproveSupplier(ctx, adminSession, "Acme")
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "CONFLICT"))

	suppliers, err := env.suppliers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, suppliers, 1)

	// the colliding proposal stays pending for the admin to discard
	pending, err := env.suppliers.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestApproveSupplierMissingPendingIsNotFound(t *testing.T) {
	env := newWorkflowEnv(t)

	_, err := env.workflow.ApproveSupplier(context.Background(), adminSession, "Ghost")
	assert.True(t, util.IsCode(err, "NOT_FOUND"))
}

func TestApproveSupplierRequiresAdmin(t *testing.T) {
	env := newWorkflowEnv(t)

	_, err := env.workflow.ApproveSupplier(context.Background(), userSession, "Acme")
	assert.True(t, util.IsCode(err, "FORBIDDEN"))
}

func TestRejectSupplierAuditsAndRemoves(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	_, err := env.workflow.SubmitSupplier(ctx, userSession, validInput())
	require.NoError(t, err)

	require.NoError(t, env.workflow.RejectSupplier(ctx, adminSession, "Acme"))

	rejected, err := env.suppliers.ListRejected(ctx)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, "Acme", rejected[0].Name)
	assert.Equal(t, "Dana Levi", rejected[0].SubmittedBy)
	assert.False(t, rejected[0].RejectedAt.IsZero())

	pending, err := env.suppliers.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDuplicateBlockedBeforePendingTable(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	_, err := env.workflow.SubmitSupplier(ctx, userSession, validInput())
	require.NoError(t, err)
	_, err = env.workflow.ApproveSupplier(ctx, adminSession, "Acme")
	require.NoError(t, err)

	dup := validInput()
	dup.Name = "acme "
	dup.Phone = "052000000"
	dup.Email = "other@example.com"

	_, err = env.workflow.SubmitSupplier(ctx, userSession, dup)
	require.Error(t, err)
	domainErr := util.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, "name", domainErr.Details["field"])

	pending, err := env.suppliers.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSubmitDirectSkipsPending(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	supplier, err := env.workflow.SubmitSupplierDirect(ctx, adminSession, validInput())
	require.NoError(t, err)
	assert.Equal(t, "Acme", supplier.Name)

	suppliers, err := env.suppliers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, suppliers, 1)

	pending, err := env.suppliers.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = env.workflow.SubmitSupplierDirect(ctx, userSession, validInput())
	assert.True(t, util.IsCode(err, "FORBIDDEN"))
}

func TestMandatoryDocumentsUploadedAndLinked(t *testing.T) {
	env := newWorkflowEnv(t, "license", "bank")
	ctx := context.Background()

	input := validInput()
	_, err := env.workflow.SubmitSupplier(ctx, userSession, input)
	require.Error(t, err)
	domainErr := util.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, "license", domainErr.Details["field"])
	assert.Zero(t, env.uploader.uploads)

	input.Documents = map[string][]byte{
		"license": []byte("pdf-bytes"),
		"bank":    []byte("more-bytes"),
	}
	pending, err := env.workflow.SubmitSupplier(ctx, userSession, input)
	require.NoError(t, err)
	assert.Equal(t, 2, env.uploader.uploads)
	assert.Contains(t, pending.Documents["license"], "https://files.local/")

	// links survive approval into the canonical table
	_, err = env.workflow.ApproveSupplier(ctx, adminSession, "Acme")
	require.NoError(t, err)
	suppliers, err := env.suppliers.List(ctx)
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, pending.Documents["bank"], suppliers[0].Documents["bank"])
}

func TestListRejectedForSubmitterApproximateMatch(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	_, err := env.workflow.SubmitSupplier(ctx, userSession, validInput())
	require.NoError(t, err)
	require.NoError(t, env.workflow.RejectSupplier(ctx, adminSession, "Acme"))

	other := validInput()
	other.Name = "Bravo"
	other.Phone = "052000000"
	other.Email = "bravo@example.com"
	otherSession := auth.Session{Username: "yossi@example.com", Name: "Yossi", Role: domain.RoleUser}
	_, err = env.workflow.SubmitSupplier(ctx, otherSession, other)
	require.NoError(t, err)
	require.NoError(t, env.workflow.RejectSupplier(ctx, adminSession, "Bravo"))

	mine, err := env.workflow.ListRejectedForSubmitter(ctx, userSession)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Acme", mine[0].Name)
}

func TestBulkDeleteReportsCount(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	for _, name := range []string{"Acme", "Bravo"} {
		input := validInput()
		input.Name = name
		input.Phone = "050-" + name
		input.Email = name + "@example.com"
		_, err := env.workflow.SubmitSupplierDirect(ctx, adminSession, input)
		require.NoError(t, err)
	}

	result, err := env.workflow.BulkDeleteSuppliers(ctx, adminSession, []string{"Acme", "Ghost", "Bravo"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, 2, result.Deleted)
	assert.Equal(t, 1, result.Missing)
	assert.Zero(t, result.Failed)

	suppliers, err := env.suppliers.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, suppliers)
}

// flakyDeleteRepo fails removal for chosen names so backend errors can
// be told apart from absent rows.
type flakyDeleteRepo struct {
	repository.SupplierRepository
	failNames map[string]bool
}

func (r *flakyDeleteRepo) Delete(ctx context.Context, name string) (bool, error) {
	if r.failNames[name] {
		return false, errors.New("store down")
	}
	return r.SupplierRepository.Delete(ctx, name)
}

func TestBulkDeleteSeparatesFailuresFromMisses(t *testing.T) {
	mem := store.NewMemoryStore()
	suppliers := repository.NewSupplierRepository(mem)
	workflow := NewWorkflowService(WorkflowDependencies{
		SupplierRepo: &flakyDeleteRepo{
			SupplierRepository: suppliers,
			failNames:          map[string]bool{"Bravo": true},
		},
		UserRepo:     repository.NewUserRepository(mem),
		SettingsRepo: repository.NewSettingsRepository(mem),
		Uploader:     &fakeUploader{},
		Dispatcher:   events.NewInMemoryDispatcher(nil),
	})
	ctx := context.Background()

	require.NoError(t, suppliers.Create(ctx, &domain.Supplier{Name: "Acme", Phone: "0501234567"}))
	require.NoError(t, suppliers.Create(ctx, &domain.Supplier{Name: "Bravo", Phone: "0520000000"}))

	result, err := workflow.BulkDeleteSuppliers(ctx, adminSession, []string{"Acme", "Bravo", "Ghost"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Missing)

	// the row whose delete failed is still there
	left, err := suppliers.List(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "Bravo", left[0].Name)
}

func TestUserApprovalPromotesWithSameHash(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	pending := &domain.PendingUser{
		Username:     "dana@example.com",
		PasswordHash: "$2a$12$stored-hash",
		Name:         "Dana Levi",
	}
	require.NoError(t, env.users.CreatePending(ctx, pending))

	user, err := env.workflow.ApproveUser(ctx, adminSession, "Dana@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", user.Username)
	assert.Equal(t, "$2a$12$stored-hash", user.PasswordHash)
	assert.Equal(t, domain.RoleUser, user.Role)

	left, err := env.users.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestUserRejectionLeavesNoAudit(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	require.NoError(t, env.users.CreatePending(ctx, &domain.PendingUser{
		Username: "dana@example.com",
		Name:     "Dana Levi",
	}))

	require.NoError(t, env.workflow.RejectUser(ctx, adminSession, "dana@example.com"))

	left, err := env.users.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)

	err = env.workflow.RejectUser(ctx, adminSession, "dana@example.com")
	assert.True(t, util.IsCode(err, "NOT_FOUND"))
}

func TestListSuppliersSearch(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	first := validInput()
	second := validInput()
	second.Name = "Bravo Electric"
	second.Fields = []string{"Electricity"}
	second.Phone = "052000000"
	second.Email = "bravo@example.com"

	_, err := env.workflow.SubmitSupplierDirect(ctx, adminSession, first)
	require.NoError(t, err)
	_, err = env.workflow.SubmitSupplierDirect(ctx, adminSession, second)
	require.NoError(t, err)

	all, err := env.workflow.ListSuppliers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := env.workflow.ListSuppliers(ctx, "electric")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Bravo Electric", found[0].Name)
}
