package dto

// ErrorResponse corpul de eroare HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Series și Number apar doar la conflictul "factura există deja" (409).
	Series string `json:"series,omitempty"`
	Number string `json:"number,omitempty"`
}

// BulkSummary rezumatul unui flux bulk: totaluri și primele erori per articol.
type BulkSummary struct {
	Success    bool     `json:"success"`
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}
