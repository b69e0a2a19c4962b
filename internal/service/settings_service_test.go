package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/supplier-directory/internal/domain"
	"github.com/spec-kit/supplier-directory/internal/repository"
	"github.com/spec-kit/supplier-directory/internal/store"
	util "github.com/spec-kit/supplier-directory/pkg/util"
)

func newSettingsService() (*SettingsService, store.RecordStore) {
	mem := store.NewMemoryStore()
	return NewSettingsService(repository.NewSettingsRepository(mem)), mem
}

func TestSettingsAddThenLoadRoundTrip(t *testing.T) {
	svc, _ := newSettingsService()
	ctx := context.Background()

	require.NoError(t, svc.AddEntry(ctx, domain.ListFields, "Plumbing"))
	require.NoError(t, svc.AddEntry(ctx, domain.ListFields, "Electricity"))
	require.NoError(t, svc.AddEntry(ctx, domain.ListPaymentTerms, "מזומן"))

	lists, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plumbing", "Electricity"}, lists.Fields)
	assert.Equal(t, []string{"מזומן"}, lists.PaymentTerms)
}

func TestSettingsAddBlankAndDuplicateAreNoOps(t *testing.T) {
	svc, _ := newSettingsService()
	ctx := context.Background()

	require.NoError(t, svc.AddEntry(ctx, domain.ListFields, "Plumbing"))
	require.NoError(t, svc.AddEntry(ctx, domain.ListFields, "   "))
	require.NoError(t, svc.AddEntry(ctx, domain.ListFields, "Plumbing"))

	lists, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plumbing"}, lists.Fields)
}

func TestSettingsRemoveLeavesParallelListUntouched(t *testing.T) {
	svc, _ := newSettingsService()
	ctx := context.Background()

	for _, f := range []string{"Plumbing", "Electricity", "Carpentry"} {
		require.NoError(t, svc.AddEntry(ctx, domain.ListFields, f))
	}
	for _, p := range []string{"מזומן", "אשראי"} {
		require.NoError(t, svc.AddEntry(ctx, domain.ListPaymentTerms, p))
	}

	require.NoError(t, svc.RemoveEntry(ctx, domain.ListFields, "Electricity"))

	lists, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plumbing", "Carpentry"}, lists.Fields)
	assert.Equal(t, []string{"מזומן", "אשראי"}, lists.PaymentTerms)
}

func TestSettingsRemoveMissingIsNotFound(t *testing.T) {
	svc, _ := newSettingsService()

	err := svc.RemoveEntry(context.Background(), domain.ListFields, "Ghost")
	assert.True(t, util.IsCode(err, "NOT_FOUND"))
}

func TestSettingsUnknownListRejected(t *testing.T) {
	svc, _ := newSettingsService()
	ctx := context.Background()

	err := svc.AddEntry(ctx, domain.SettingsList("colors"), "red")
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))
	err = svc.RemoveEntry(ctx, domain.SettingsList("colors"), "red")
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))
}

func TestSettingsSeedOnlyOnEmpty(t *testing.T) {
	svc, _ := newSettingsService()
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))
	lists, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPaymentTerms, lists.PaymentTerms)

	// a second seed must not duplicate, and custom values must survive
	require.NoError(t, svc.AddEntry(ctx, domain.ListPaymentTerms, "שוטף+45"))
	require.NoError(t, svc.Seed(ctx))
	lists, err = svc.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, lists.PaymentTerms, len(domain.DefaultPaymentTerms)+1)
}

// The shorter vocabulary is padded with blank placeholders in storage;
// writes reuse the first placeholder instead of growing the table.
func TestSettingsPlaceholderReuse(t *testing.T) {
	svc, mem := newSettingsService()
	ctx := context.Background()

	for _, f := range []string{"Plumbing", "Electricity"} {
		require.NoError(t, svc.AddEntry(ctx, domain.ListFields, f))
	}
	require.NoError(t, svc.RemoveEntry(ctx, domain.ListFields, "Plumbing"))

	recs, err := mem.List(ctx, repository.TableSettings)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Electricity", recs[0]["fields"])
	assert.Equal(t, "", recs[1]["fields"])

	require.NoError(t, svc.AddEntry(ctx, domain.ListFields, "Carpentry"))
	recs, err = mem.List(ctx, repository.TableSettings)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, "Carpentry", recs[1]["fields"])
}
