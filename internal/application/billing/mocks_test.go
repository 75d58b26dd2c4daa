package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
	"github.com/cstanesvoda/facturitrendy/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dubluri de test pentru porturile billing
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func testUser() *entity.User {
	return &entity.User{
		ID:       "u-1",
		Username: "seller",
		Role:     entity.RoleUser,
		Trendyol: entity.TrendyolCredentials{
			APIKey:     "key",
			APISecret:  "secret",
			SupplierID: "123",
		},
		SmartBill: entity.SmartBillCredentials{
			Token:      "token",
			Email:      "seller@example.com",
			CompanyCIF: "RO12345678",
			Warehouse:  "Depozit",
		},
	}
}

// fakeMappings ține legăturile în memorie, cheia fiind orderNumber.
type fakeMappings struct {
	byOrder  map[string]*entity.InvoiceMapping
	replaced []string
}

func newFakeMappings(existing ...*entity.InvoiceMapping) *fakeMappings {
	f := &fakeMappings{byOrder: make(map[string]*entity.InvoiceMapping)}
	for _, m := range existing {
		f.byOrder[m.OrderNumber] = m
	}
	return f
}

func (f *fakeMappings) GetByOrder(_, orderNumber string) (*entity.InvoiceMapping, error) {
	return f.byOrder[orderNumber], nil
}

func (f *fakeMappings) GetByID(id int64, _ string) (*entity.InvoiceMapping, error) {
	for _, m := range f.byOrder {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMappings) ListByUser(_ string) ([]*entity.InvoiceMapping, error) {
	out := make([]*entity.InvoiceMapping, 0, len(f.byOrder))
	for _, m := range f.byOrder {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMappings) Create(m *entity.InvoiceMapping) error {
	f.byOrder[m.OrderNumber] = m
	return nil
}

func (f *fakeMappings) Replace(m *entity.InvoiceMapping) error {
	m.CreatedAt = time.Now()
	f.byOrder[m.OrderNumber] = m
	f.replaced = append(f.replaced, m.OrderNumber)
	return nil
}

func (f *fakeMappings) Update(m *entity.InvoiceMapping) error {
	f.byOrder[m.OrderNumber] = m
	return nil
}

func (f *fakeMappings) Delete(id int64, _ string) error {
	for k, m := range f.byOrder {
		if m.ID == id {
			delete(f.byOrder, k)
			return nil
		}
	}
	return nil
}

func (f *fakeMappings) Search(_ string) ([]*entity.InvoiceMapping, error) {
	return f.ListByUser("")
}

// fakeMarketplace servește comenzile primite la construcție, paginat.
type fakeMarketplace struct {
	orders   []entity.Order
	uploads  []string // nume de fișiere urcate
	labelErr error
}

func (f *fakeMarketplace) GetOrders(_ context.Context, q dto.OrderQuery) (*entity.OrderPage, error) {
	start := q.Page * q.Size
	if start > len(f.orders) {
		start = len(f.orders)
	}
	end := start + q.Size
	if end > len(f.orders) {
		end = len(f.orders)
	}
	return &entity.OrderPage{
		Content:       f.orders[start:end],
		Page:          q.Page,
		Size:          q.Size,
		TotalElements: len(f.orders),
	}, nil
}

func (f *fakeMarketplace) GetShipmentPackages(_ context.Context, _ dto.PackageQuery) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (f *fakeMarketplace) GetProducts(_ context.Context, _ dto.ProductQuery) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (f *fakeMarketplace) GetShippingLabel(_ context.Context, _ string) ([]byte, error) {
	return []byte("label"), f.labelErr
}

func (f *fakeMarketplace) SendInvoiceLink(_ context.Context, _ int64, _, _ string) error {
	return nil
}

func (f *fakeMarketplace) UploadInvoiceFile(_ context.Context, _ string, _ []byte, filename string) error {
	f.uploads = append(f.uploads, filename)
	return nil
}

// fakeInvoicing emite facturi numerotate secvențial; comenzile din
// failOrders primesc eroare la emitere.
type fakeInvoicing struct {
	series     string
	seriesErr  error
	nextNumber int
	failOrders map[string]bool
	created    []string // orderNumber-ele facturate
	pdfErr     error
}

func newFakeInvoicing() *fakeInvoicing {
	return &fakeInvoicing{series: "FACT", nextNumber: 1, failOrders: map[string]bool{}}
}

func (f *fakeInvoicing) GetSeries(_ context.Context, _ string) (*entity.SeriesList, error) {
	if f.seriesErr != nil {
		return nil, f.seriesErr
	}
	return &entity.SeriesList{List: []entity.InvoiceSeries{{Name: f.series, NextNumber: f.nextNumber}}}, nil
}

func (f *fakeInvoicing) CreateInvoice(_ context.Context, draft *entity.InvoiceDraft) (*entity.IssuedInvoice, error) {
	if f.failOrders[draft.OrderNumber] {
		return nil, fmt.Errorf("SmartBill request rejected: date invalide")
	}
	number := fmt.Sprintf("%04d", f.nextNumber)
	f.nextNumber++
	f.created = append(f.created, draft.OrderNumber)
	return &entity.IssuedInvoice{Series: draft.SeriesName, Number: number}, nil
}

func (f *fakeInvoicing) ListInvoices(_ context.Context, _, _, _ string) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}

func (f *fakeInvoicing) GetInvoicePDF(_ context.Context, _, _ string) ([]byte, error) {
	if f.pdfErr != nil {
		return nil, f.pdfErr
	}
	return []byte("%PDF-1.4"), nil
}

func (f *fakeInvoicing) ReverseInvoice(_ context.Context, _, _, _ string) (json.RawMessage, error) {
	return json.RawMessage(`{"status":"ok"}`), nil
}

func marketplaceFactory(f *fakeMarketplace) MarketplaceFactory {
	return func(_ entity.TrendyolCredentials) MarketplaceClient { return f }
}

func invoicingFactory(f *fakeInvoicing) InvoicingFactory {
	return func(_ entity.SmartBillCredentials) InvoicingClient { return f }
}

func makeOrders(n int) []entity.Order {
	out := make([]entity.Order, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entity.Order{
			ID:           int64(1000 + i),
			OrderNumber:  fmt.Sprintf("TY-%d", i+1),
			CurrencyCode: "RON",
			Lines: []entity.OrderLine{
				{SKU: "SKU-1", MerchantSKU: "MSKU-1", ProductName: "Produs"},
			},
		})
	}
	return out
}
