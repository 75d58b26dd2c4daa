package dto

// OrderQuery filtrele de listare a comenzilor Trendyol.
// Status acceptă o singură valoare sau o listă separată prin virgulă.
// StartDate/EndDate sunt date ISO (YYYY-MM-DD sau YYYY-MM-DDTHH:MM:SS),
// normalizate de client la epoch-milisecunde în fusul Europe/Bucharest.
type OrderQuery struct {
	Page        int    `query:"page"`
	Size        int    `query:"size"`
	Status      string `query:"status"`
	StartDate   string `query:"startDate"`
	EndDate     string `query:"endDate"`
	OrderNumber string `query:"orderNumber"`
	SKU         string `query:"sku"`
}

// Defaults aplică valorile implicite de paginare.
func (q *OrderQuery) Defaults() {
	if q.Size <= 0 {
		q.Size = 50
	}
	if q.Page < 0 {
		q.Page = 0
	}
}

// PackageQuery filtrele de listare a pachetelor de livrare.
type PackageQuery struct {
	Page        int    `query:"page"`
	Size        int    `query:"size"`
	Status      string `query:"status"`
	StartDate   string `query:"startDate"`
	EndDate     string `query:"endDate"`
	OrderNumber string `query:"orderNumber"`
}

// ProductQuery filtrele de listare a produselor Trendyol.
// Approved: nil = nefiltrat, altfel true/false.
type ProductQuery struct {
	Page     int    `query:"page"`
	Size     int    `query:"size"`
	Barcode  string `query:"barcode"`
	Approved *bool  `query:"approved"`
}
