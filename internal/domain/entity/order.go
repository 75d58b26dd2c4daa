package entity

import "github.com/shopspring/decimal"

// Order este o comandă Trendyol, imutabilă odată preluată în cadrul unui flux.
// Câmpurile păstrează numele JSON ale API-ului de integrare Trendyol.
type Order struct {
	ID                int64           `json:"id"` // id-ul pachetului de livrare
	OrderNumber       string          `json:"orderNumber"`
	OrderDate         int64           `json:"orderDate"` // epoch în milisecunde
	CurrencyCode      string          `json:"currencyCode"`
	CustomerFirstName string          `json:"customerFirstName"`
	CustomerLastName  string          `json:"customerLastName"`
	CustomerEmail     string          `json:"customerEmail"`
	IdentityNumber    string          `json:"identityNumber"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	InvoiceAddress    Address         `json:"invoiceAddress"`
	ShipmentAddress   Address         `json:"shipmentAddress"`
	InvoiceLink       string          `json:"invoiceLink,omitempty"`
	Status            string          `json:"status,omitempty"`
	Lines             []OrderLine     `json:"lines"`
}

// OrderLine este o linie de comandă (un articol).
type OrderLine struct {
	SKU         string          `json:"sku"`
	MerchantSKU string          `json:"merchantSku"`
	Barcode     string          `json:"barcode"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	VatRate     decimal.Decimal `json:"vatRate"`
}

// Address este adresa de facturare sau de livrare a unei comenzi.
type Address struct {
	Address1    string `json:"address1"`
	City        string `json:"city"`
	District    string `json:"district"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
}

// OrderPage este o pagină de comenzi cu metadate de paginare.
// Când s-a aplicat filtrare client-side (SKU, multi-status), TotalElements și
// TotalPages reflectă setul filtrat, nu pagina brută a furnizorului.
type OrderPage struct {
	Content       []Order `json:"content"`
	Page          int     `json:"page"`
	Size          int     `json:"size"`
	TotalElements int     `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
}

// PostalPlace este rezultatul căutării unui cod poștal în directorul extern.
type PostalPlace struct {
	City   string `json:"city"`
	County string `json:"county"`
}
