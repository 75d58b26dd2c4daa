package billing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/domain"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
)

func newBulkCreate(mappings *fakeMappings, marketplace *fakeMarketplace, invoicing *fakeInvoicing) *BulkCreateUseCase {
	return NewBulkCreateUseCase(
		mappings,
		marketplaceFactory(marketplace),
		invoicingFactory(invoicing),
		&stubDirectory{},
		testLogger(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Condiții preliminare
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkCreateRequiresTrendyolCredentials(t *testing.T) {
	uc := newBulkCreate(newFakeMappings(), &fakeMarketplace{}, newFakeInvoicing())
	user := testUser()
	user.Trendyol.APIKey = ""

	_, err := uc.Run(context.Background(), user, dto.BulkCreateRequest{})
	require.ErrorIs(t, err, domain.ErrTrendyolNotConfigured)
}

func TestBulkCreateRequiresSmartBillCredentials(t *testing.T) {
	uc := newBulkCreate(newFakeMappings(), &fakeMarketplace{}, newFakeInvoicing())
	user := testUser()
	user.SmartBill.Token = ""

	_, err := uc.Run(context.Background(), user, dto.BulkCreateRequest{})
	require.ErrorIs(t, err, domain.ErrSmartBillNotConfigured)
}

// ──────────────────────────────────────────────────────────────────────────────
// Selecția candidaților
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkCreateSkipsAlreadyInvoicedOrders(t *testing.T) {
	mappings := newFakeMappings(&entity.InvoiceMapping{
		ID:          1,
		UserID:      "u-1",
		OrderNumber: "TY-2",
		Series:      "FACT",
		Number:      "0001",
	})
	marketplace := &fakeMarketplace{orders: makeOrders(3)}
	invoicing := newFakeInvoicing()
	uc := newBulkCreate(mappings, marketplace, invoicing)

	summary, err := uc.Run(context.Background(), testUser(), dto.BulkCreateRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Successful)
	assert.ElementsMatch(t, []string{"TY-1", "TY-3"}, invoicing.created)
}

func TestBulkCreateSkipsOrdersWithInvoiceLink(t *testing.T) {
	orders := makeOrders(3)
	orders[1].InvoiceLink = "https://cdn.example.com/factura.pdf"
	marketplace := &fakeMarketplace{orders: orders}
	invoicing := newFakeInvoicing()
	uc := newBulkCreate(newFakeMappings(), marketplace, invoicing)

	summary, err := uc.Run(context.Background(), testUser(), dto.BulkCreateRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.NotContains(t, invoicing.created, "TY-2")
}

func TestBulkCreateRespectsOrderCountLimit(t *testing.T) {
	marketplace := &fakeMarketplace{orders: makeOrders(8)}
	invoicing := newFakeInvoicing()
	uc := newBulkCreate(newFakeMappings(), marketplace, invoicing)

	summary, err := uc.Run(context.Background(), testUser(), dto.BulkCreateRequest{OrderCount: 5})
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 5, summary.Successful)
	assert.Len(t, invoicing.created, 5)
}

func TestBulkCreateDefaultsOrderCount(t *testing.T) {
	marketplace := &fakeMarketplace{orders: makeOrders(25)}
	invoicing := newFakeInvoicing()
	uc := newBulkCreate(newFakeMappings(), marketplace, invoicing)

	summary, err := uc.Run(context.Background(), testUser(), dto.BulkCreateRequest{})
	require.NoError(t, err)

	assert.Equal(t, defaultOrderCount, summary.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eșecuri individuale
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkCreateCollectsIndividualFailures(t *testing.T) {
	marketplace := &fakeMarketplace{orders: makeOrders(4)}
	invoicing := newFakeInvoicing()
	invoicing.failOrders["TY-3"] = true
	uc := newBulkCreate(newFakeMappings(), marketplace, invoicing)

	summary, err := uc.Run(context.Background(), testUser(), dto.BulkCreateRequest{})
	require.NoError(t, err)

	assert.False(t, summary.Success)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 3, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "Order TY-3: ")
}

func TestBulkCreateCapsReportedErrors(t *testing.T) {
	marketplace := &fakeMarketplace{orders: makeOrders(15)}
	invoicing := newFakeInvoicing()
	for i := 1; i <= 15; i++ {
		invoicing.failOrders[fmt.Sprintf("TY-%d", i)] = true
	}
	uc := newBulkCreate(newFakeMappings(), marketplace, invoicing)

	summary, err := uc.Run(context.Background(), testUser(), dto.BulkCreateRequest{OrderCount: 15})
	require.NoError(t, err)

	assert.Equal(t, 15, summary.Failed)
	assert.Len(t, summary.Errors, maxReportedErrors)
}

// ──────────────────────────────────────────────────────────────────────────────
// Serie și persistență
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkCreatePersistsIssuedMapping(t *testing.T) {
	mappings := newFakeMappings()
	marketplace := &fakeMarketplace{orders: makeOrders(1)}
	invoicing := newFakeInvoicing()
	uc := newBulkCreate(mappings, marketplace, invoicing)

	_, err := uc.Run(context.Background(), testUser(), dto.BulkCreateRequest{})
	require.NoError(t, err)

	saved := mappings.byOrder["TY-1"]
	require.NotNil(t, saved)
	assert.Equal(t, "u-1", saved.UserID)
	assert.Equal(t, "FACT", saved.Series)
	assert.Equal(t, "0001", saved.Number)
}

func TestBulkCreateFallsBackToDefaultSeries(t *testing.T) {
	mappings := newFakeMappings()
	marketplace := &fakeMarketplace{orders: makeOrders(1)}
	invoicing := newFakeInvoicing()
	invoicing.seriesErr = errors.New("SmartBill indisponibil")
	uc := newBulkCreate(mappings, marketplace, invoicing)

	summary, err := uc.Run(context.Background(), testUser(), dto.BulkCreateRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Successful)

	saved := mappings.byOrder["TY-1"]
	require.NotNil(t, saved)
	assert.Equal(t, fallbackSeries, saved.Series)
}
