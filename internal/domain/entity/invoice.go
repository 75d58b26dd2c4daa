package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceMapping leagă o comandă Trendyol de factura SmartBill emisă pentru ea.
// Invariant: cel mult un rând per (utilizator, număr de comandă) — un create nou
// pentru aceeași comandă înlocuiește rândul anterior, nu îl duplică.
type InvoiceMapping struct {
	ID          int64
	UserID      string
	OrderNumber string
	Series      string
	Number      string
	CreatedAt   time.Time
	Username    string // completat doar de căutarea admin (join cu users)
}

// IssuedInvoice este confirmarea emiterii returnată de SmartBill.
type IssuedInvoice struct {
	Series string `json:"series"`
	Number string `json:"number"`
}

// InvoiceSeries este o serie de facturare din contul SmartBill.
type InvoiceSeries struct {
	Name       string `json:"name"`
	NextNumber int    `json:"nextNumber"`
}

// SeriesList este răspunsul listării seriilor.
type SeriesList struct {
	List []InvoiceSeries `json:"list"`
}

// InvoiceDraft este payload-ul tranzient de creare a unei facturi, derivat
// dintr-o comandă; nu se persistă — doar perechea serie/număr rezultată.
// Forma coincide cu corpul JSON acceptat de POST /invoice la SmartBill.
type InvoiceDraft struct {
	CompanyVatCode string        `json:"companyVatCode"`
	UseIntraCif    bool          `json:"useIntraCif"`
	SeriesName     string        `json:"seriesName"`
	Client         InvoiceClient `json:"client"`
	IssueDate      string        `json:"issueDate"`
	Currency       string        `json:"currency"`
	UseStock       bool          `json:"useStock"`
	Products       []InvoiceLine `json:"products"`
	OrderNumber    string        `json:"orderNumber,omitempty"`
}

// InvoiceClient este cumpărătorul de pe factură.
type InvoiceClient struct {
	Name       string `json:"name"`
	VatCode    string `json:"vatCode"`
	IsTaxPayer bool   `json:"isTaxPayer"`
	Address    string `json:"address"`
	City       string `json:"city"`
	County     string `json:"county"`
	Country    string `json:"country"`
	Email      string `json:"email"`
	SaveToDb   bool   `json:"saveToDb"`
}

// InvoiceLine este o linie de factură derivată dintr-o linie de comandă.
type InvoiceLine struct {
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	ProductDescription string          `json:"productDescription"`
	MeasuringUnitName  string          `json:"measuringUnitName"`
	Currency           string          `json:"currency"`
	Quantity           decimal.Decimal `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
	IsTaxIncluded      bool            `json:"isTaxIncluded"`
	TaxPercentage      decimal.Decimal `json:"taxPercentage"`
	SaveToDb           bool            `json:"saveToDb"`
	WarehouseName      string          `json:"warehouseName,omitempty"`
}
