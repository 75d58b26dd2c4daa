package postal

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cstanesvoda/facturitrendy/internal/domain"
)

const resultsPage = `<!DOCTYPE html>
<html><body>
<h1>Rezultate căutare</h1>
<table>
  <tr><th>Cod</th><th>Stradă</th><th>Localitate</th><th>Județ</th></tr>
  <tr><td>077190</td><td>Str. Principală</td><td> Voluntari </td><td> Ilfov </td></tr>
  <tr><td>077191</td><td>Str. Secundară</td><td>Alt oraș</td><td>Alt județ</td></tr>
</table>
</body></html>`

func testDirectory(server *httptest.Server) *Directory {
	d := NewDirectory()
	d.BaseURL = server.URL
	return d
}

func TestLookupExtractsCityAndCounty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/077190", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		fmt.Fprint(w, resultsPage)
	}))
	defer server.Close()

	place, err := testDirectory(server).Lookup(context.Background(), "077190")
	require.NoError(t, err)

	// Primul rând de date câștigă; spațiile din celule se elimină.
	assert.Equal(t, "Voluntari", place.City)
	assert.Equal(t, "Ilfov", place.County)
}

func TestLookupNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Niciun rezultat</p></body></html>`)
	}))
	defer server.Close()

	_, err := testDirectory(server).Lookup(context.Background(), "000000")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, domain.StatusOf(err))
}

func TestLookupHeaderOnlyTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><table><tr><th>Cod</th></tr></table></body></html>`)
	}))
	defer server.Close()

	_, err := testDirectory(server).Lookup(context.Background(), "077190")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, domain.StatusOf(err))
}

func TestLookupRejectsEmptyCode(t *testing.T) {
	d := NewDirectory()

	_, err := d.Lookup(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, domain.StatusOf(err))
}

func TestLookupUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := testDirectory(server).Lookup(context.Background(), "077190")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, domain.StatusOf(err))
}
