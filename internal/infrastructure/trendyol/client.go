package trendyol

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cstanesvoda/facturitrendy/internal/application/dto"
	"github.com/cstanesvoda/facturitrendy/internal/domain"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
)

const (
	defaultBaseURL            = "https://api.trendyol.com/sapigw"
	defaultIntegrationBaseURL = "https://apigw.trendyol.com/integration"

	userAgent = "Trendyol-Order-Manager"

	// maxPageSize este dimensiunea maximă de pagină acceptată de API.
	// Preluările integrale (filtru SKU, multi-status) o folosesc pentru eficiență.
	maxPageSize = 200
)

// Client apelează API-ul de vânzător Trendyol pentru un singur set de credențiale.
// Se construiește per cerere, din credențialele decriptate ale utilizatorului —
// niciun fel de stare globală de sesiune.
type Client struct {
	// BaseURL și IntegrationBaseURL sunt publice pentru a putea fi țintite
	// spre un server de test.
	BaseURL            string
	IntegrationBaseURL string

	creds      entity.TrendyolCredentials
	httpClient *http.Client
}

// NewClient construiește clientul cu timeout fix de rețea.
func NewClient(creds entity.TrendyolCredentials) *Client {
	return &Client{
		BaseURL:            defaultBaseURL,
		IntegrationBaseURL: defaultIntegrationBaseURL,
		creds:              creds,
		httpClient:         &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) authHeader() string {
	raw := c.creds.APIKey + ":" + c.creds.APISecret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// ── Comenzi ───────────────────────────────────────────────────────────────────

// GetOrders întoarce o pagină de comenzi conform filtrelor.
//
// Trei căi, în funcție de filtre:
//   - status multiplu (listă cu virgule): câte o preluare integrală per status,
//     deduplicare, sortare după dată, fereastra cerută;
//   - filtru SKU (API-ul nu îl suportă server-side): preluare integrală și
//     filtrare client-side, apoi fereastra cerută;
//   - altfel: o singură cerere, răspunsul furnizorului trecut mai departe.
//
// Când s-a filtrat client-side, metadatele de pagină reflectă setul filtrat.
func (c *Client) GetOrders(ctx context.Context, q dto.OrderQuery) (*entity.OrderPage, error) {
	if strings.Contains(q.Status, ",") {
		return c.ordersMultiStatus(ctx, q)
	}
	if q.SKU != "" {
		return c.ordersFilteredBySKU(ctx, q)
	}
	return c.fetchOrdersPage(ctx, q, q.Page, q.Size)
}

// ordersFilteredBySKU preia toate paginile pentru filtrele date și filtrează
// client-side după SKU. Eșecul primei pagini se propagă; eșecul unei pagini
// ulterioare trunchiază setul fără eroare (rezultate parțiale).
func (c *Client) ordersFilteredBySKU(ctx context.Context, q dto.OrderQuery) (*entity.OrderPage, error) {
	all, err := c.fetchAllOrders(ctx, q, true)
	if err != nil {
		return nil, err
	}
	filtered := filterBySKU(all, q.SKU)
	return paginate(filtered, q.Page, q.Size), nil
}

// ordersMultiStatus preia integral comenzile pentru fiecare status, elimină
// duplicatele (aceeași comandă poate apărea sub mai multe statusuri), aplică
// filtrul SKU dacă există, sortează crescător după data comenzii și aplică
// fereastra cerută.
func (c *Client) ordersMultiStatus(ctx context.Context, q dto.OrderQuery) (*entity.OrderPage, error) {
	statuses := strings.Split(q.Status, ",")

	var all []entity.Order
	seen := make(map[string]struct{})

	for _, status := range statuses {
		sq := q
		sq.Status = strings.TrimSpace(status)
		// Preluarea per status este fail-soft: o pagină eșuată oprește doar
		// statusul curent, rezultatele deja acumulate se păstrează.
		orders, err := c.fetchAllOrders(ctx, sq, false)
		if err != nil {
			log.Debug().Err(err).Str("status", sq.Status).Msg("trendyol: preluare comenzi eșuată pentru status")
			continue
		}
		for _, o := range orders {
			key := dedupKey(o)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			all = append(all, o)
		}
	}

	if q.SKU != "" {
		all = filterBySKU(all, q.SKU)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].OrderDate < all[j].OrderDate
	})

	return paginate(all, q.Page, q.Size), nil
}

// dedupKey preferă id-ul comenzii și cade pe numărul de comandă.
func dedupKey(o entity.Order) string {
	if o.ID != 0 {
		return "id:" + strconv.FormatInt(o.ID, 10)
	}
	return "no:" + o.OrderNumber
}

// fetchAllOrders preia pagini de dimensiune maximă până la o pagină scurtă.
// Cu firstPageFatal, eșecul paginii 0 se propagă ca eroare; paginile ulterioare
// eșuate trunchiază în liniște. Fără, orice eșec întrerupe și se păstrează
// ce s-a acumulat.
func (c *Client) fetchAllOrders(ctx context.Context, q dto.OrderQuery, firstPageFatal bool) ([]entity.Order, error) {
	var all []entity.Order
	for page := 0; ; page++ {
		res, err := c.fetchOrdersPage(ctx, q, page, maxPageSize)
		if err != nil {
			if firstPageFatal && page == 0 {
				return nil, err
			}
			log.Debug().Err(err).Int("page", page).Msg("trendyol: pagină eșuată, continuăm cu rezultate parțiale")
			break
		}
		all = append(all, res.Content...)
		if len(res.Content) < maxPageSize {
			break
		}
	}
	return all, nil
}

// fetchOrdersPage face o singură cerere de pagină la endpoint-ul de comenzi.
func (c *Client) fetchOrdersPage(ctx context.Context, q dto.OrderQuery, page, size int) (*entity.OrderPage, error) {
	endpoint := fmt.Sprintf("%s/order/sellers/%s/orders", c.IntegrationBaseURL, c.creds.SupplierID)

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	params.Set("orderByField", "CreatedDate")
	params.Set("orderByDirection", "ASC")
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.StartDate != "" {
		params.Set("startDate", formatDate(q.StartDate))
	}
	if q.EndDate != "" {
		params.Set("endDate", formatDate(q.EndDate))
	}
	if q.OrderNumber != "" {
		params.Set("orderNumber", q.OrderNumber)
	}

	var result entity.OrderPage
	if err := c.getJSON(ctx, endpoint, params, &result, "failed to fetch orders"); err != nil {
		return nil, err
	}
	return &result, nil
}

// filterBySKU păstrează comenzile cu cel puțin o linie al cărei merchantSku
// sau barcode conține filtrul, case-insensitive.
func filterBySKU(orders []entity.Order, sku string) []entity.Order {
	needle := strings.ToLower(sku)
	var filtered []entity.Order
	for _, o := range orders {
		for _, line := range o.Lines {
			if strings.Contains(strings.ToLower(line.MerchantSKU), needle) ||
				strings.Contains(strings.ToLower(line.Barcode), needle) {
				filtered = append(filtered, o)
				break
			}
		}
	}
	return filtered
}

// paginate aplică fereastra pagină/dimensiune peste un set deja filtrat și
// calculează metadatele din setul filtrat.
func paginate(orders []entity.Order, page, size int) *entity.OrderPage {
	start := page * size
	end := start + size
	if start > len(orders) {
		start = len(orders)
	}
	if end > len(orders) {
		end = len(orders)
	}
	window := orders[start:end]

	totalPages := 0
	if size > 0 {
		totalPages = (len(orders) + size - 1) / size
	}

	return &entity.OrderPage{
		Content:       window,
		Page:          page,
		Size:          len(window),
		TotalElements: len(orders),
		TotalPages:    totalPages,
	}
}

// ── Pachete de livrare, produse, etichete ─────────────────────────────────────

// GetShipmentPackages listează pachetele de livrare; răspunsul furnizorului
// trece mai departe nealterat.
func (c *Client) GetShipmentPackages(ctx context.Context, q dto.PackageQuery) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/suppliers/%s/shipment-packages", c.BaseURL, c.creds.SupplierID)

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("size", strconv.Itoa(q.Size))
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.StartDate != "" {
		params.Set("startDate", formatDate(q.StartDate))
	}
	if q.EndDate != "" {
		params.Set("endDate", formatDate(q.EndDate))
	}
	if q.OrderNumber != "" {
		params.Set("orderNumber", q.OrderNumber)
	}

	return c.getRaw(ctx, endpoint, params, "failed to fetch shipment packages")
}

// GetProducts listează produsele vânzătorului; răspunsul trece mai departe nealterat.
func (c *Client) GetProducts(ctx context.Context, q dto.ProductQuery) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/suppliers/%s/products", c.BaseURL, c.creds.SupplierID)

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("size", strconv.Itoa(q.Size))
	if q.Barcode != "" {
		params.Set("barcode", q.Barcode)
	}
	if q.Approved != nil {
		params.Set("approved", strconv.FormatBool(*q.Approved))
	}

	return c.getRaw(ctx, endpoint, params, "failed to fetch products")
}

// GetShippingLabel descarcă eticheta de transport a unui pachet (PDF binar).
// 204 sau corp gol înseamnă etichetă încă negenerată → 404.
func (c *Client) GetShippingLabel(ctx context.Context, packageID string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/suppliers/%s/shipment-packages/%s/cargo-label", c.BaseURL, c.creds.SupplierID, packageID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.NewError(http.StatusInternalServerError, "failed to fetch shipping label: %v", err)
	}
	c.setJSONHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewError(http.StatusInternalServerError, "failed to fetch shipping label: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewError(resp.StatusCode, "failed to fetch shipping label: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewError(http.StatusInternalServerError, "failed to fetch shipping label: %v", err)
	}
	if resp.StatusCode == http.StatusNoContent || len(body) == 0 {
		return nil, domain.NewError(http.StatusNotFound, "label not found or not generated yet")
	}
	return body, nil
}

// ── Facturi către Trendyol ────────────────────────────────────────────────────

// SendInvoiceLink trimite un link de factură pentru un pachet de livrare.
func (c *Client) SendInvoiceLink(ctx context.Context, shipmentPackageID int64, invoiceLink, invoiceNumber string) error {
	endpoint := fmt.Sprintf("%s/sellers/%s/seller-invoice-links", c.IntegrationBaseURL, c.creds.SupplierID)

	payload := map[string]any{
		"shipmentPackageId": shipmentPackageID,
		"invoiceLink":       invoiceLink,
	}
	if invoiceNumber != "" {
		payload["invoiceNumber"] = invoiceNumber
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.NewError(http.StatusInternalServerError, "failed to send invoice link: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.NewError(http.StatusInternalServerError, "failed to send invoice link: %v", err)
	}
	c.setJSONHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewError(http.StatusInternalServerError, "failed to send invoice link: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return upstreamError(resp, "failed to send invoice link")
	}
	return nil
}

// UploadInvoiceFile urcă un PDF de factură ca atașament multipart la
// endpoint-ul per-pachet al Trendyol.
func (c *Client) UploadInvoiceFile(ctx context.Context, shipmentPackageID string, pdf []byte, filename string) error {
	endpoint := fmt.Sprintf("%s/sellers/%s/seller-invoice-file", c.IntegrationBaseURL, c.creds.SupplierID)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return domain.NewError(http.StatusInternalServerError, "failed to upload invoice file: %v", err)
	}
	if _, err := part.Write(pdf); err != nil {
		return domain.NewError(http.StatusInternalServerError, "failed to upload invoice file: %v", err)
	}
	if err := w.WriteField("shipmentPackageId", shipmentPackageID); err != nil {
		return domain.NewError(http.StatusInternalServerError, "failed to upload invoice file: %v", err)
	}
	if err := w.Close(); err != nil {
		return domain.NewError(http.StatusInternalServerError, "failed to upload invoice file: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return domain.NewError(http.StatusInternalServerError, "failed to upload invoice file: %v", err)
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewError(http.StatusInternalServerError, "failed to upload invoice file: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return upstreamError(resp, "failed to upload invoice file")
	}
	return nil
}

// ── Helpere HTTP ──────────────────────────────────────────────────────────────

func (c *Client) setJSONHeaders(req *http.Request) {
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any, errPrefix string) error {
	raw, err := c.getRaw(ctx, endpoint, params, errPrefix)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domain.NewError(http.StatusInternalServerError, "%s: %v", errPrefix, err)
	}
	return nil
}

func (c *Client) getRaw(ctx context.Context, endpoint string, params url.Values, errPrefix string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, domain.NewError(http.StatusInternalServerError, "%s: %v", errPrefix, err)
	}
	c.setJSONHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Eroare de transport (timeout, conexiune): echivalent 500.
		return nil, domain.NewError(http.StatusInternalServerError, "%s: %v", errPrefix, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, upstreamError(resp, errPrefix)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewError(http.StatusInternalServerError, "%s: %v", errPrefix, err)
	}
	return body, nil
}

// upstreamError mapează un răspuns non-2xx la o eroare structurată, preferând
// mesajul JSON al furnizorului când există.
func upstreamError(resp *http.Response, prefix string) *domain.Error {
	msg := fmt.Sprintf("%s: status %d", prefix, resp.StatusCode)
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(body) > 0 {
		var parsed struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
			msg = parsed.Message
		}
	}
	return domain.NewError(resp.StatusCode, "%s", msg)
}
