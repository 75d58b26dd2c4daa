package smartbill

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cstanesvoda/facturitrendy/internal/domain"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
)

func testClient(server *httptest.Server) *Client {
	c := NewClient(entity.SmartBillCredentials{
		Token:      "token",
		Email:      "seller@example.com",
		CompanyCIF: "RO12345678",
	})
	c.BaseURL = server.URL
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Serii
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/series", r.URL.Path)
		assert.Equal(t, "RO12345678", r.URL.Query().Get("cif"))
		assert.Equal(t, "f", r.URL.Query().Get("type"))

		email, token, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "seller@example.com", email)
		assert.Equal(t, "token", token)

		fmt.Fprint(w, `{"list":[{"name":"FACT","nextNumber":42}]}`)
	}))
	defer server.Close()

	// Tipul de document gol înseamnă factură.
	series, err := testClient(server).GetSeries(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, series.List, 1)
	assert.Equal(t, "FACT", series.List[0].Name)
	assert.Equal(t, 42, series.List[0].NextNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Emitere și stornare
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/invoice", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"series":"FACT","number":"0042"}`)
	}))
	defer server.Close()

	issued, err := testClient(server).CreateInvoice(context.Background(), &entity.InvoiceDraft{
		CompanyVatCode: "RO12345678",
		SeriesName:     "FACT",
		Currency:       "RON",
	})
	require.NoError(t, err)

	assert.Equal(t, "FACT", issued.Series)
	assert.Equal(t, "0042", issued.Number)
	assert.Equal(t, "RO12345678", got["companyVatCode"])
	assert.Equal(t, "FACT", got["seriesName"])
}

func TestReverseInvoiceDefaultsIssueDate(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoice/reverse", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"series":"FACT","number":"0043"}`)
	}))
	defer server.Close()

	_, err := testClient(server).ReverseInvoice(context.Background(), "FACT", "0042", "")
	require.NoError(t, err)

	assert.Equal(t, "RO12345678", got["companyVatCode"])
	assert.Equal(t, "FACT", got["seriesName"])
	assert.Equal(t, "0042", got["number"])
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, got["issueDate"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Listare
// ──────────────────────────────────────────────────────────────────────────────

func TestListInvoicesRequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoice/list", r.URL.Path)
		assert.Equal(t, "RO12345678", r.URL.Query().Get("cif"))
		assert.Equal(t, "FACT", r.URL.Query().Get("seriesName"))
		assert.Equal(t, "0042", r.URL.Query().Get("number"))
		fmt.Fprint(w, `[{"series":"FACT","number":"0042"}]`)
	}))
	defer server.Close()

	raw, err := testClient(server).ListInvoices(context.Background(), "FACT", "0042", "")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"series":"FACT","number":"0042"}]`, string(raw))
}

// ──────────────────────────────────────────────────────────────────────────────
// PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestGetInvoicePDFRequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoice/pdf", r.URL.Path)
		assert.Equal(t, "RO12345678", r.URL.Query().Get("cif"))
		assert.Equal(t, "FACT", r.URL.Query().Get("seriesname"))
		assert.Equal(t, "0042", r.URL.Query().Get("number"))
		// Endpoint-ul de PDF cere acest Content-Type, deși cererea e GET.
		assert.Equal(t, "application/xml", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/octet-stream", r.Header.Get("Accept"))
		fmt.Fprint(w, "%PDF-1.4")
	}))
	defer server.Close()

	pdf, err := testClient(server).GetInvoicePDF(context.Background(), "FACT", "0042")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traducerea erorilor
// ──────────────────────────────────────────────────────────────────────────────

func TestStatusErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "credențiale invalide",
			status:  http.StatusUnauthorized,
			wantMsg: "Invalid SmartBill credentials",
		},
		{
			name:    "acces interzis",
			status:  http.StatusForbidden,
			wantMsg: "Access forbidden - check your SmartBill plan or rate limit",
		},
		{
			name:    "cerere respinsă cu errorText",
			status:  http.StatusBadRequest,
			body:    `{"errorText":"Seria nu exista"}`,
			wantMsg: "SmartBill request rejected: Seria nu exista",
		},
		{
			name:    "cerere respinsă cu message",
			status:  http.StatusBadRequest,
			body:    `{"message":"CIF invalid"}`,
			wantMsg: "SmartBill request rejected: CIF invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			_, err := testClient(server).GetSeries(context.Background(), "f")
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantMsg)
			assert.Equal(t, tt.status, domain.StatusOf(err))
		})
	}
}

func TestPDFNotFoundNamesInvoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(server).GetInvoicePDF(context.Background(), "FACT", "0042")
	require.Error(t, err)
	assert.EqualError(t, err, "Invoice not found: FACT-0042")
}
