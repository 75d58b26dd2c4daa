package smartbill

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cstanesvoda/facturitrendy/internal/domain"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
)

const defaultBaseURL = "https://ws.smartbill.ro/SBORO/api"

// Timeout-uri pe tip de operație: crearea facturii este cea mai lentă.
const (
	readTimeout    = 10 * time.Second
	createTimeout  = 30 * time.Second
	reverseTimeout = 15 * time.Second
)

// Client acoperă API-ul SmartBill Cloud: serii, emitere, PDF, stornare.
// Autentificarea este HTTP Basic cu email + token API.
type Client struct {
	// BaseURL este expus pentru teste; în producție rămâne defaultBaseURL.
	BaseURL string

	creds      entity.SmartBillCredentials
	httpClient *http.Client
}

func NewClient(creds entity.SmartBillCredentials) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: createTimeout,
		},
	}
}

// ── Serii de facturare ──

// GetSeries întoarce seriile de documente configurate în SmartBill.
// docType gol înseamnă "f" (factură).
func (c *Client) GetSeries(ctx context.Context, docType string) (*entity.SeriesList, error) {
	if docType == "" {
		docType = "f"
	}
	params := url.Values{}
	params.Set("cif", c.creds.CompanyCIF)
	params.Set("type", docType)

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var out entity.SeriesList
	if err := c.getJSON(ctx, "/series", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Facturi ──

// CreateInvoice emite o factură pe baza schiței construite din comandă.
func (c *Client) CreateInvoice(ctx context.Context, draft *entity.InvoiceDraft) (*entity.IssuedInvoice, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("serializare factură: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, createTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPost, "/invoice", nil, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var issued entity.IssuedInvoice
	if err := json.Unmarshal(raw, &issued); err != nil {
		return nil, fmt.Errorf("răspuns SmartBill invalid: %w", err)
	}
	return &issued, nil
}

// ListInvoices întoarce documentele emise, filtrate opțional după serie,
// număr sau data emiterii. Răspunsul este pasat mai departe nemodificat.
func (c *Client) ListInvoices(ctx context.Context, seriesName, number, issueDate string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("cif", c.creds.CompanyCIF)
	if seriesName != "" {
		params.Set("seriesName", seriesName)
	}
	if number != "" {
		params.Set("number", number)
	}
	if issueDate != "" {
		params.Set("issueDate", issueDate)
	}

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/invoice/list", params, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

// GetInvoicePDF descarcă PDF-ul unei facturi emise.
// SmartBill cere Content-Type application/xml pe acest endpoint.
func (c *Client) GetInvoicePDF(ctx context.Context, series, number string) ([]byte, error) {
	params := url.Values{}
	params.Set("cif", c.creds.CompanyCIF)
	params.Set("seriesname", series)
	params.Set("number", number)

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/invoice/pdf", params, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Accept", "application/octet-stream")

	pdf, err := c.doPDF(req, series, number)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// ReverseInvoice emite factura de stornare pentru documentul dat.
// issueDate gol înseamnă dată curentă.
func (c *Client) ReverseInvoice(ctx context.Context, series, number, issueDate string) (json.RawMessage, error) {
	if issueDate == "" {
		issueDate = time.Now().Format("2006-01-02")
	}
	payload := map[string]string{
		"companyVatCode": c.creds.CompanyCIF,
		"seriesName":     series,
		"number":         number,
		"issueDate":      issueDate,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serializare stornare: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, reverseTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPost, "/invoice/reverse", nil, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

// ── Infrastructura HTTP ──

func (c *Client) newRequest(ctx context.Context, method, path string, params url.Values, body io.Reader) (*http.Request, error) {
	endpoint := c.BaseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("construire cerere SmartBill: %w", err)
	}
	req.SetBasicAuth(c.creds.Email, c.creds.Token)
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	raw, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("răspuns SmartBill invalid: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewError(http.StatusBadGateway, "SmartBill indisponibil: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, domain.NewError(http.StatusBadGateway, "citire răspuns SmartBill: %v", err)
	}
	if resp.StatusCode >= 400 {
		return nil, c.statusError(resp.StatusCode, raw, "", "")
	}
	return raw, nil
}

func (c *Client) doPDF(req *http.Request, series, number string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewError(http.StatusBadGateway, "SmartBill indisponibil: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, domain.NewError(http.StatusBadGateway, "citire PDF SmartBill: %v", err)
	}
	if resp.StatusCode >= 400 {
		return nil, c.statusError(resp.StatusCode, raw, series, number)
	}
	return raw, nil
}

// statusError traduce codurile SmartBill în mesaje acționabile pentru vânzător.
func (c *Client) statusError(status int, body []byte, series, number string) error {
	switch status {
	case http.StatusUnauthorized:
		return domain.NewError(http.StatusUnauthorized, "Invalid SmartBill credentials")
	case http.StatusForbidden:
		return domain.NewError(http.StatusForbidden, "Access forbidden - check your SmartBill plan or rate limit")
	case http.StatusNotFound:
		if series != "" || number != "" {
			return domain.NewError(http.StatusNotFound, "Invoice not found: %s-%s", series, number)
		}
		return domain.NewError(http.StatusNotFound, "SmartBill resource not found")
	case http.StatusBadRequest:
		return domain.NewError(http.StatusBadRequest, "SmartBill request rejected: %s", errorMessage(body))
	default:
		return domain.NewError(status, "SmartBill error (HTTP %d): %s", status, errorMessage(body))
	}
}

// errorMessage extrage câmpul errorText/message din corpul de eroare,
// altfel un fragment din răspunsul brut.
func errorMessage(body []byte) string {
	var payload struct {
		ErrorText string `json:"errorText"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.ErrorText != "" {
			return payload.ErrorText
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 512 {
		snippet = snippet[:512]
	}
	if snippet == "" {
		snippet = "răspuns gol"
	}
	return snippet
}
