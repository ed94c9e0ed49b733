package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"modhome/pkg/models"
)

// ReadRaw loads a scraped catalog: one JSON array of product objects.
func ReadRaw(path string) ([]models.RawProduct, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var raw []models.RawProduct
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return raw, nil
}

// ReadProducts loads a published catalog file.
func ReadProducts(path string) ([]models.Product, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var products []models.Product
	if err := json.Unmarshal(b, &products); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for i := range products {
		if products[i].Features == nil {
			products[i].Features = []string{}
		}
	}
	return products, nil
}

// Encode renders v as 2-space indented JSON with a trailing newline.
// HTML characters are left unescaped so image URLs stay readable in diffs.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// FileLoader reads a published catalog file on every Load.
type FileLoader struct {
	Path string
}

func (l FileLoader) Load(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadProducts(l.Path)
}
