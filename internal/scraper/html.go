package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"modhome/pkg/models"
)

// Selectors locate listing fields inside one product card.
type Selectors struct {
	Item        string
	Name        string
	Price       string
	Image       string
	Description string
	Feature     string
}

// DefaultSelectors match the marketplace listing markup.
var DefaultSelectors = Selectors{
	Item:        ".product-item",
	Name:        ".product-title",
	Price:       ".price",
	Image:       "img",
	Description: ".product-desc",
	Feature:     ".features li",
}

// HTMLSource scrapes product cards from listing pages.
type HTMLSource struct {
	Pages     []string
	Selectors Selectors
	Client    *http.Client
}

func NewHTMLSource(pages ...string) *HTMLSource {
	return &HTMLSource{
		Pages:     pages,
		Selectors: DefaultSelectors,
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *HTMLSource) Name() string { return "html" }

func (s *HTMLSource) FetchAll(ctx context.Context) ([]models.RawProduct, error) {
	var all []models.RawProduct
	for _, page := range s.Pages {
		items, err := s.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}

func (s *HTMLSource) fetchPage(ctx context.Context, page string) ([]models.RawProduct, error) {
	base, err := url.Parse(page)
	if err != nil {
		return nil, fmt.Errorf("html: parse page url %s: %w", page, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, page, nil)
	if err != nil {
		return nil, fmt.Errorf("html: build request: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("html: request %s: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("html: %s: status %d: %s", page, resp.StatusCode, string(body))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("html: parse %s: %w", page, err)
	}
	return ParseListing(doc, base, s.Selectors), nil
}

// ParseListing extracts one RawProduct per item card. Fields that are not
// present in the markup stay nil so the pipeline can report them.
func ParseListing(doc *goquery.Document, base *url.URL, sel Selectors) []models.RawProduct {
	var out []models.RawProduct
	doc.Find(sel.Item).Each(func(_ int, card *goquery.Selection) {
		var p models.RawProduct
		p.Name = text(card, sel.Name)
		p.Price = text(card, sel.Price)
		p.Description = text(card, sel.Description)

		if img := card.Find(sel.Image).First(); img.Length() > 0 {
			src, ok := img.Attr("src")
			if !ok || strings.TrimSpace(src) == "" {
				src, ok = img.Attr("data-src")
			}
			if ok && strings.TrimSpace(src) != "" {
				resolved := resolve(base, strings.TrimSpace(src))
				p.Image = &resolved
			}
		}

		card.Find(sel.Feature).Each(func(_ int, li *goquery.Selection) {
			if f := strings.TrimSpace(li.Text()); f != "" {
				p.Features = append(p.Features, f)
			}
		})
		out = append(out, p)
	})
	return out
}

func text(card *goquery.Selection, selector string) *string {
	if selector == "" {
		return nil
	}
	found := card.Find(selector).First()
	if found.Length() == 0 {
		return nil
	}
	v := strings.Join(strings.Fields(found.Text()), " ")
	return &v
}

func resolve(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil || base == nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
