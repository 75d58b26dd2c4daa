package dto

import "time"

// BulkCreateRequest parametrii fluxului bulk de emitere facturi.
// OrderCount limitează câte comenzi eligibile se procesează într-o rulare.
type BulkCreateRequest struct {
	OrderCount  int    `json:"order_count"`
	Status      string `json:"status"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	OrderNumber string `json:"orderNumber"`
	SKU         string `json:"sku"`
}

// BulkUploadRequest parametrii fluxului bulk de urcare a PDF-urilor la Trendyol.
type BulkUploadRequest struct {
	UploadCount int    `json:"upload_count"`
	Status      string `json:"status"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	OrderNumber string `json:"orderNumber"`
	SKU         string `json:"sku"`
}

// CreateInvoiceResult răspunsul emiterii unei facturi pentru o comandă.
type CreateInvoiceResult struct {
	Success bool   `json:"success"`
	Series  string `json:"series"`
	Number  string `json:"number"`
	Message string `json:"message,omitempty"`
}

// ReverseInvoiceRequest cererea de stornare a unei facturi.
type ReverseInvoiceRequest struct {
	Series    string `json:"series"`
	Number    string `json:"number"`
	IssueDate string `json:"issueDate"`
}

// InvoiceListFilter filtrele listării facturilor SmartBill.
type InvoiceListFilter struct {
	Series string `query:"series"`
	Number string `query:"number"`
	Date   string `query:"date"` // YYYY-MM-DD
}

// RelayUploadRequest cererea "descarcă din SmartBill și urcă la Trendyol".
type RelayUploadRequest struct {
	ShipmentPackageID string `json:"shipment_package_id"`
	Series            string `json:"series"`
	Number            string `json:"number"`
}

// InvoiceLinkRequest cererea de trimitere a link-ului de factură către Trendyol.
type InvoiceLinkRequest struct {
	InvoiceLink   string `json:"invoiceLink"`
	InvoiceNumber string `json:"invoiceNumber"`
}

// NextInvoiceNumberResponse seria și numărul următoarei facturi.
type NextInvoiceNumberResponse struct {
	SeriesName string `json:"seriesName"`
	NextNumber string `json:"nextNumber"`
	Combined   string `json:"combined"`
	CIF        string `json:"cif"`
}

// MappingResponse o legătură comandă → factură, pentru listări.
type MappingResponse struct {
	ID          int64     `json:"id,omitempty"`
	OrderNumber string    `json:"order_number"`
	Series      string    `json:"series"`
	Number      string    `json:"number"`
	CreatedAt   time.Time `json:"created_at"`
	Username    string    `json:"username,omitempty"`
}

// OrderMappingResponse răspunsul căutării facturii unei singure comenzi.
type OrderMappingResponse struct {
	HasInvoice bool   `json:"hasInvoice"`
	Series     string `json:"series,omitempty"`
	Number     string `json:"number,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// MappingUpsertRequest cererea admin de adăugare/editare a unei legături.
type MappingUpsertRequest struct {
	OrderNumber string `json:"order_id"`
	Series      string `json:"series"`
	Number      string `json:"number"`
}
