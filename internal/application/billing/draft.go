package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
)

const (
	// Moneda de bază a firmei. Comenzile în altă monedă intră pe
	// regimul OSS și primesc o serie dedicată.
	homeCurrency = "RON"
	ossSuffix    = "-OSS"

	// SmartBill cere un cod fiscal pe client; persoanele fizice din
	// marketplace nu au unul, așa că folosim placeholder-ul acceptat.
	vatCodePlaceholder = "-"

	measuringUnit = "buc"

	// Unii integratori trimit literal "merchantSku" în loc de codul real.
	merchantSKUPlaceholder = "merchantSku"
)

// DraftConfig parametrii de emitere rezolvați o singură dată per flux.
type DraftConfig struct {
	CompanyVatCode string
	SeriesName     string
	WarehouseName  string
	UseStock       bool
}

// BuildDraft construiește schița de factură SmartBill dintr-o comandă.
// Directorul postal este opțional: la eșec, localitatea și județul rămân
// cele din adresa comenzii.
func BuildDraft(ctx context.Context, order *entity.Order, cfg DraftConfig, directory PostalDirectory) *entity.InvoiceDraft {
	currency := order.CurrencyCode
	if currency == "" {
		currency = homeCurrency
	}
	intraCIF := currency != homeCurrency

	series := cfg.SeriesName
	if intraCIF {
		series = applyOSSSuffix(series)
	}

	addr := mergeAddress(order.InvoiceAddress, order.ShipmentAddress)
	city, county := resolvePlace(ctx, directory, addr)

	draft := &entity.InvoiceDraft{
		CompanyVatCode: cfg.CompanyVatCode,
		UseIntraCif:    intraCIF,
		SeriesName:     series,
		IssueDate:      time.Now().Format("2006-01-02"),
		Currency:       currency,
		UseStock:       cfg.UseStock,
		OrderNumber:    order.OrderNumber,
		Client: entity.InvoiceClient{
			Name:       customerName(order),
			VatCode:    vatCodePlaceholder,
			IsTaxPayer: false,
			Address:    addr.Address1,
			City:       city,
			County:     county,
			Country:    countryOf(addr),
			Email:      order.CustomerEmail,
			SaveToDb:   true,
		},
	}

	for _, line := range order.Lines {
		draft.Products = append(draft.Products, entity.InvoiceLine{
			Code:               resolveProductCode(line),
			Name:               line.ProductName,
			ProductDescription: fmt.Sprintf("Numar comanda Trendyol:%s", order.OrderNumber),
			MeasuringUnitName:  measuringUnit,
			Currency:           currency,
			Quantity:           line.Quantity,
			Price:              line.Price,
			IsTaxIncluded:      true,
			TaxPercentage:      line.VatRate,
			SaveToDb:           false,
			WarehouseName:      cfg.WarehouseName,
		})
	}

	return draft
}

// applyOSSSuffix adaugă sufixul OSS o singură dată, indiferent dacă
// seria configurată îl conține deja.
func applyOSSSuffix(series string) string {
	return strings.ReplaceAll(series, ossSuffix, "") + ossSuffix
}

// resolveProductCode alege codul de produs pentru linia de factură:
// corecțiile punctuale au prioritate, apoi merchantSku, apoi sku dacă
// merchantSku este placeholder-ul trimis de integrator.
func resolveProductCode(line entity.OrderLine) string {
	if code := overrideProductCode(line.SKU); code != "" {
		return code
	}
	if line.MerchantSKU == "" || line.MerchantSKU == merchantSKUPlaceholder {
		return line.SKU
	}
	return line.MerchantSKU
}

func customerName(order *entity.Order) string {
	name := strings.TrimSpace(order.CustomerFirstName + " " + order.CustomerLastName)
	if name == "" {
		return "N/A"
	}
	return name
}

// mergeAddress completează câmp cu câmp adresa de facturare din cea de
// livrare. Comenzile marketplace vin frecvent cu facturarea goală.
func mergeAddress(invoice, shipment entity.Address) entity.Address {
	if invoice.Address1 == "" {
		invoice.Address1 = shipment.Address1
	}
	if invoice.City == "" {
		invoice.City = shipment.City
	}
	if invoice.District == "" {
		invoice.District = shipment.District
	}
	if invoice.PostalCode == "" {
		invoice.PostalCode = shipment.PostalCode
	}
	if invoice.CountryCode == "" {
		invoice.CountryCode = shipment.CountryCode
	}
	return invoice
}

// resolvePlace întoarce localitatea și județul clientului. Județul pleacă
// de la district-ul adresei și este suprascris de directorul postal când
// căutarea reușește; localitatea din adresă, cu directorul pe post de rezervă.
func resolvePlace(ctx context.Context, directory PostalDirectory, addr entity.Address) (city, county string) {
	city = addr.City
	county = addr.District
	if directory == nil || addr.PostalCode == "" {
		return city, county
	}
	place, err := directory.Lookup(ctx, addr.PostalCode)
	if err != nil || place == nil {
		return city, county
	}
	if city == "" {
		city = place.City
	}
	return city, place.County
}

func countryOf(addr entity.Address) string {
	if addr.CountryCode == "" {
		return "RO"
	}
	return addr.CountryCode
}
