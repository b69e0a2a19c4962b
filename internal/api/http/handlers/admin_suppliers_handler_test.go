package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/supplier-directory/internal/auth"
	"github.com/spec-kit/supplier-directory/internal/domain"
	"github.com/spec-kit/supplier-directory/internal/events"
	"github.com/spec-kit/supplier-directory/internal/repository"
	"github.com/spec-kit/supplier-directory/internal/service"
	"github.com/spec-kit/supplier-directory/internal/store"
)

func newAdminSuppliersApp(t *testing.T) (*fiber.App, repository.SupplierRepository) {
	t.Helper()
	mem := store.NewMemoryStore()
	suppliers := repository.NewSupplierRepository(mem)
	workflow := service.NewWorkflowService(service.WorkflowDependencies{
		SupplierRepo: suppliers,
		UserRepo:     repository.NewUserRepository(mem),
		SettingsRepo: repository.NewSettingsRepository(mem),
		Dispatcher:   events.NewInMemoryDispatcher(nil),
	})
	handler := NewAdminSuppliersHandler(workflow, "DELETE")

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("session", auth.Session{
			Username: "admin@example.com",
			Name:     "Admin",
			Role:     domain.RoleAdmin,
		})
		return c.Next()
	})
	app.Post("/admin/suppliers/pending/:name/approve", handler.Approve)
	app.Post("/admin/suppliers/pending/:name/reject", handler.Reject)
	return app, suppliers
}

func seedPending(t *testing.T, suppliers repository.SupplierRepository, name string) {
	t.Helper()
	require.NoError(t, suppliers.CreatePending(context.Background(), &domain.PendingSupplier{
		Supplier: domain.Supplier{
			Name:        name,
			Fields:      []string{"חשמל"},
			Phone:       "0501234567",
			SubmittedBy: "Dana Levi",
		},
	}))
}

func TestApproveHebrewSupplierName(t *testing.T) {
	app, suppliers := newAdminSuppliersApp(t)
	seedPending(t, suppliers, "חברת חשמל")

	target := "/admin/suppliers/pending/" + url.PathEscape("חברת חשמל") + "/approve"
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, target, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	canonical, err := suppliers.List(context.Background())
	require.NoError(t, err)
	require.Len(t, canonical, 1)
	assert.Equal(t, "חברת חשמל", canonical[0].Name)

	pending, err := suppliers.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRejectHebrewSupplierName(t *testing.T) {
	app, suppliers := newAdminSuppliersApp(t)
	seedPending(t, suppliers, "מאפיית הכפר")

	target := "/admin/suppliers/pending/" + url.PathEscape("מאפיית הכפר") + "/reject"
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, target, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	rejected, err := suppliers.ListRejected(context.Background())
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, "מאפיית הכפר", rejected[0].Name)
}
