package billing

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/domain"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
)

func newBulkUpload(mappings *fakeMappings, marketplace *fakeMarketplace, invoicing *fakeInvoicing) *BulkUploadUseCase {
	return NewBulkUploadUseCase(
		mappings,
		marketplaceFactory(marketplace),
		invoicingFactory(invoicing),
		testLogger(),
	)
}

func mappingFor(id int64, orderNumber, number string) *entity.InvoiceMapping {
	return &entity.InvoiceMapping{
		ID:          id,
		UserID:      "u-1",
		OrderNumber: orderNumber,
		Series:      "FACT",
		Number:      number,
	}
}

func TestBulkUploadRequiresExistingMappings(t *testing.T) {
	uc := newBulkUpload(newFakeMappings(), &fakeMarketplace{orders: makeOrders(2)}, newFakeInvoicing())

	_, err := uc.Run(context.Background(), testUser(), dto.BulkUploadRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, domain.StatusOf(err))
	assert.EqualError(t, err, "No SmartBill invoices found in database")
}

func TestBulkUploadBuildsFilenameFromPackageAndInvoice(t *testing.T) {
	mappings := newFakeMappings(mappingFor(1, "TY-1", "0042"))
	marketplace := &fakeMarketplace{orders: makeOrders(1)}
	uc := newBulkUpload(mappings, marketplace, newFakeInvoicing())

	summary, err := uc.Run(context.Background(), testUser(), dto.BulkUploadRequest{})
	require.NoError(t, err)

	assert.True(t, summary.Success)
	assert.Equal(t, 1, summary.Successful)
	// ID-ul pachetului este id-ul comenzii, nu numărul ei.
	require.Len(t, marketplace.uploads, 1)
	assert.Equal(t, "invoice_1000_FACT_0042.pdf", marketplace.uploads[0])
}

func TestBulkUploadSkipsUnmappedAndLinkedOrders(t *testing.T) {
	orders := makeOrders(3)
	orders[2].InvoiceLink = "https://cdn.example.com/factura.pdf"
	mappings := newFakeMappings(
		mappingFor(1, "TY-1", "0001"),
		mappingFor(2, "TY-3", "0003"),
	)
	marketplace := &fakeMarketplace{orders: orders}
	uc := newBulkUpload(mappings, marketplace, newFakeInvoicing())

	summary, err := uc.Run(context.Background(), testUser(), dto.BulkUploadRequest{})
	require.NoError(t, err)

	// TY-2 nu are factură emisă, TY-3 are deja link atașat.
	assert.Equal(t, 1, summary.Total)
	require.Len(t, marketplace.uploads, 1)
	assert.Equal(t, "invoice_1000_FACT_0001.pdf", marketplace.uploads[0])
}

func TestBulkUploadCollectsDownloadFailures(t *testing.T) {
	mappings := newFakeMappings(mappingFor(1, "TY-1", "0001"))
	marketplace := &fakeMarketplace{orders: makeOrders(1)}
	invoicing := newFakeInvoicing()
	invoicing.pdfErr = errors.New("Invoice not found: FACT-0001")
	uc := newBulkUpload(mappings, marketplace, invoicing)

	summary, err := uc.Run(context.Background(), testUser(), dto.BulkUploadRequest{})
	require.NoError(t, err)

	assert.False(t, summary.Success)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "Order TY-1: Invoice not found: FACT-0001", summary.Errors[0])
	assert.Empty(t, marketplace.uploads)
}
