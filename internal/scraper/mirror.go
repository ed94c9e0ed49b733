package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"modhome/pkg/models"
)

// MirrorSource reads a raw catalog already exported as JSON, such as the one
// served by cmd/mirror-server.
//
//	GET {BaseURL}/products
//	[{"name": "...", "price": "$650", "image": "...", "features": [...]}, ...]
type MirrorSource struct {
	BaseURL string
	Client  *http.Client
}

func NewMirrorSource(baseURL string) *MirrorSource {
	return &MirrorSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *MirrorSource) Name() string { return "mirror" }

func (s *MirrorSource) FetchAll(ctx context.Context) ([]models.RawProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("mirror: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mirror: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("mirror: status %d: %s", resp.StatusCode, string(body))
	}

	var raw []models.RawProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("mirror: decode json: %w", err)
	}
	return raw, nil
}
