// Package billing conține fluxurile de facturare: construirea schițelor
// de factură din comenzi, emiterea individuală și procesarea în masă.
package billing

import (
	"context"
	"encoding/json"

	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
)

// MarketplaceClient este portul către API-ul marketplace-ului.
type MarketplaceClient interface {
	GetOrders(ctx context.Context, q dto.OrderQuery) (*entity.OrderPage, error)
	GetShipmentPackages(ctx context.Context, q dto.PackageQuery) (json.RawMessage, error)
	GetProducts(ctx context.Context, q dto.ProductQuery) (json.RawMessage, error)
	GetShippingLabel(ctx context.Context, packageID string) ([]byte, error)
	SendInvoiceLink(ctx context.Context, shipmentPackageID int64, invoiceLink, invoiceNumber string) error
	UploadInvoiceFile(ctx context.Context, shipmentPackageID string, pdf []byte, filename string) error
}

// InvoicingClient este portul către furnizorul de facturare.
type InvoicingClient interface {
	GetSeries(ctx context.Context, docType string) (*entity.SeriesList, error)
	CreateInvoice(ctx context.Context, draft *entity.InvoiceDraft) (*entity.IssuedInvoice, error)
	ListInvoices(ctx context.Context, seriesName, number, issueDate string) (json.RawMessage, error)
	GetInvoicePDF(ctx context.Context, series, number string) ([]byte, error)
	ReverseInvoice(ctx context.Context, series, number, issueDate string) (json.RawMessage, error)
}

// PostalDirectory rezolvă un cod postal în localitate + județ.
type PostalDirectory interface {
	Lookup(ctx context.Context, postalCode string) (*entity.PostalPlace, error)
}

// Clienții se construiesc per cerere, din credențialele utilizatorului
// autentificat. Fabricile țin use case-urile independente de implementare.
type (
	MarketplaceFactory func(creds entity.TrendyolCredentials) MarketplaceClient
	InvoicingFactory   func(creds entity.SmartBillCredentials) InvoicingClient
)
