// Package postal rezolvă coduri postale românești în localitate + județ,
// prin directorul public coduripostale.net.
package postal

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/cstanesvoda/facturitrendy/internal/domain"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
)

const (
	defaultBaseURL = "https://www.coduripostale.net"

	// Directorul refuză clienții fără un User-Agent de browser.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Directory caută un cod postal în directorul public.
type Directory struct {
	// BaseURL este expus pentru teste.
	BaseURL string

	httpClient *http.Client
}

func NewDirectory() *Directory {
	return &Directory{
		BaseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Lookup întoarce localitatea și județul pentru codul postal dat.
// Pagina de rezultate are un singur tabel: primul rând este antetul,
// al doilea conține codul căutat, cu localitatea pe coloana a treia
// și județul pe a patra.
func (d *Directory) Lookup(ctx context.Context, postalCode string) (*entity.PostalPlace, error) {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return nil, domain.NewError(http.StatusBadRequest, "cod postal gol")
	}

	// Directorul servește pagina de rezultate direct la /<cod>.
	endpoint := fmt.Sprintf("%s/%s", d.BaseURL, url.PathEscape(postalCode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("construire cerere director postal: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewError(http.StatusBadGateway, "director postal indisponibil: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewError(http.StatusBadGateway, "director postal: HTTP %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsare pagină director postal: %w", err)
	}

	place := extractPlace(doc)
	if place == nil {
		return nil, domain.NewError(http.StatusNotFound, "cod postal negăsit: %s", postalCode)
	}
	return place, nil
}

// extractPlace parcurge arborele HTML până la primul tabel și citește
// al doilea rând (primul rând de date).
func extractPlace(doc *html.Node) *entity.PostalPlace {
	table := findFirst(doc, "table")
	if table == nil {
		return nil
	}
	rows := findAll(table, "tr")
	if len(rows) < 2 {
		return nil
	}
	cells := findAll(rows[1], "td")
	if len(cells) < 4 {
		return nil
	}
	city := strings.TrimSpace(textContent(cells[2]))
	county := strings.TrimSpace(textContent(cells[3]))
	if city == "" && county == "" {
		return nil
	}
	return &entity.PostalPlace{City: city, County: county}
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
