package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// stubDirectory întoarce mereu același loc, sau eroare dacă place e nil.
type stubDirectory struct {
	place *entity.PostalPlace
	err   error
}

func (s *stubDirectory) Lookup(_ context.Context, _ string) (*entity.PostalPlace, error) {
	return s.place, s.err
}

func testOrder() *entity.Order {
	return &entity.Order{
		ID:                12345,
		OrderNumber:       "TY-1001",
		CurrencyCode:      "RON",
		CustomerFirstName: "Ion",
		CustomerLastName:  "Popescu",
		CustomerEmail:     "ion@example.com",
		InvoiceAddress: entity.Address{
			Address1:    "Str. Lalelelor 5",
			City:        "Cluj-Napoca",
			PostalCode:  "400001",
			CountryCode: "RO",
		},
		Lines: []entity.OrderLine{
			{
				SKU:         "SKU-1",
				MerchantSKU: "MSKU-1",
				ProductName: "Parfum oriental",
				Quantity:    decimal.NewFromInt(2),
				Price:       decimal.NewFromFloat(99.90),
				VatRate:     decimal.NewFromInt(19),
			},
		},
	}
}

func testConfig() DraftConfig {
	return DraftConfig{
		CompanyVatCode: "RO12345678",
		SeriesName:     "FACT",
		WarehouseName:  "Depozit central",
		UseStock:       true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Schița de factură
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildDraftRON(t *testing.T) {
	draft := BuildDraft(context.Background(), testOrder(), testConfig(), nil)

	assert.False(t, draft.UseIntraCif)
	assert.Equal(t, "FACT", draft.SeriesName)
	assert.Equal(t, "RON", draft.Currency)
	assert.Equal(t, "RO12345678", draft.CompanyVatCode)
	assert.Equal(t, time.Now().Format("2006-01-02"), draft.IssueDate)
	assert.True(t, draft.UseStock)

	assert.Equal(t, "Ion Popescu", draft.Client.Name)
	assert.Equal(t, "-", draft.Client.VatCode)
	assert.False(t, draft.Client.IsTaxPayer)
	assert.Equal(t, "RO", draft.Client.Country)
	// Clientul se salvează în nomenclatorul SmartBill; produsele nu.
	assert.True(t, draft.Client.SaveToDb)

	require.Len(t, draft.Products, 1)
	line := draft.Products[0]
	assert.Equal(t, "MSKU-1", line.Code)
	assert.Equal(t, "Parfum oriental", line.Name)
	assert.Equal(t, "Numar comanda Trendyol:TY-1001", line.ProductDescription)
	assert.Equal(t, "buc", line.MeasuringUnitName)
	assert.True(t, line.IsTaxIncluded)
	assert.True(t, line.TaxPercentage.Equal(decimal.NewFromInt(19)))
	assert.Equal(t, "Depozit central", line.WarehouseName)
	assert.False(t, line.SaveToDb)
}

func TestBuildDraftOSS(t *testing.T) {
	order := testOrder()
	order.CurrencyCode = "EUR"

	draft := BuildDraft(context.Background(), order, testConfig(), nil)

	assert.True(t, draft.UseIntraCif)
	assert.Equal(t, "FACT-OSS", draft.SeriesName)
	assert.Equal(t, "EUR", draft.Currency)
	assert.Equal(t, "EUR", draft.Products[0].Currency)
}

func TestApplyOSSSuffixIdempotent(t *testing.T) {
	assert.Equal(t, "FACT-OSS", applyOSSSuffix("FACT"))
	// Seria configurată deja cu sufix nu îl primește de două ori.
	assert.Equal(t, "FACT-OSS", applyOSSSuffix("FACT-OSS"))
}

func TestCustomerNameFallback(t *testing.T) {
	order := testOrder()
	order.CustomerFirstName = ""
	order.CustomerLastName = ""

	draft := BuildDraft(context.Background(), order, testConfig(), nil)
	assert.Equal(t, "N/A", draft.Client.Name)
}

func TestAddressFallbackPerField(t *testing.T) {
	order := testOrder()
	order.InvoiceAddress = entity.Address{City: "Iasi"}
	order.ShipmentAddress = entity.Address{
		Address1:    "Bd. Copou 10",
		City:        "Cluj-Napoca",
		PostalCode:  "700050",
		CountryCode: "RO",
	}

	draft := BuildDraft(context.Background(), order, testConfig(), nil)

	// Câmpurile goale vin din livrare; cele setate rămân din facturare.
	assert.Equal(t, "Bd. Copou 10", draft.Client.Address)
	assert.Equal(t, "Iasi", draft.Client.City)
}

func TestCountryFallback(t *testing.T) {
	order := testOrder()
	order.InvoiceAddress.CountryCode = ""
	order.ShipmentAddress.CountryCode = ""

	draft := BuildDraft(context.Background(), order, testConfig(), nil)
	assert.Equal(t, "RO", draft.Client.Country)
}

// ──────────────────────────────────────────────────────────────────────────────
// Directorul poștal
// ──────────────────────────────────────────────────────────────────────────────

func TestPostalLookupOverwritesCounty(t *testing.T) {
	order := testOrder()
	order.InvoiceAddress.District = "Sector vechi"
	directory := &stubDirectory{place: &entity.PostalPlace{City: "Cluj-Napoca", County: "Cluj"}}

	draft := BuildDraft(context.Background(), order, testConfig(), directory)

	// Localitatea din adresă are prioritate; județul din director bate district-ul.
	assert.Equal(t, "Cluj-Napoca", draft.Client.City)
	assert.Equal(t, "Cluj", draft.Client.County)
}

func TestPostalLookupFillsCityOnlyWhenEmpty(t *testing.T) {
	order := testOrder()
	order.InvoiceAddress.City = ""
	directory := &stubDirectory{place: &entity.PostalPlace{City: "Floresti", County: "Cluj"}}

	draft := BuildDraft(context.Background(), order, testConfig(), directory)

	assert.Equal(t, "Floresti", draft.Client.City)
	assert.Equal(t, "Cluj", draft.Client.County)
}

func TestPostalLookupFailureKeepsDistrictAsCounty(t *testing.T) {
	order := testOrder()
	order.InvoiceAddress.District = "Cluj"
	directory := &stubDirectory{err: assert.AnError}

	draft := BuildDraft(context.Background(), order, testConfig(), directory)

	// Eșecul directorului nu pierde câmpurile deja prezente în comandă.
	assert.Equal(t, "Cluj-Napoca", draft.Client.City)
	assert.Equal(t, "Cluj", draft.Client.County)
}

func TestDistrictServesAsCountyWithoutPostalCode(t *testing.T) {
	order := testOrder()
	order.InvoiceAddress.PostalCode = ""
	order.InvoiceAddress.District = "Cluj"
	// Directorul nu trebuie apelat fără cod poștal.
	directory := &stubDirectory{place: &entity.PostalPlace{City: "Altundeva", County: "Alt județ"}}

	draft := BuildDraft(context.Background(), order, testConfig(), directory)

	assert.Equal(t, "Cluj-Napoca", draft.Client.City)
	assert.Equal(t, "Cluj", draft.Client.County)
}

func TestShipmentDistrictFallsThroughToCounty(t *testing.T) {
	order := testOrder()
	order.InvoiceAddress.District = ""
	order.InvoiceAddress.PostalCode = ""
	order.ShipmentAddress.District = "Ilfov"

	draft := BuildDraft(context.Background(), order, testConfig(), nil)

	assert.Equal(t, "Ilfov", draft.Client.County)
}

// ──────────────────────────────────────────────────────────────────────────────
// Codul de produs
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveProductCode(t *testing.T) {
	cases := []struct {
		name string
		line entity.OrderLine
		want string
	}{
		{
			name: "merchantSku normal",
			line: entity.OrderLine{SKU: "SKU-1", MerchantSKU: "MSKU-1"},
			want: "MSKU-1",
		},
		{
			name: "placeholder cade pe sku",
			line: entity.OrderLine{SKU: "SKU-1", MerchantSKU: "merchantSku"},
			want: "SKU-1",
		},
		{
			name: "merchantSku gol cade pe sku",
			line: entity.OrderLine{SKU: "SKU-1", MerchantSKU: ""},
			want: "SKU-1",
		},
		{
			name: "corecția punctuală câștigă",
			line: entity.OrderLine{SKU: "DH-6290362345749", MerchantSKU: "MSKU-1"},
			want: "6290362345749",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, resolveProductCode(tc.line))
		})
	}
}

func TestSKUOverridesLoaded(t *testing.T) {
	// Tabelul embed trebuie să fie nenul și să conțină intrările cunoscute.
	require.NotEmpty(t, skuOverrides)
	assert.Equal(t, "6290360593661", overrideProductCode("TYBE5ZISTJCR2Q5O74"))
	assert.Empty(t, overrideProductCode("SKU-INEXISTENT"))
}
