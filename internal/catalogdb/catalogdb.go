// Package catalogdb mirrors the published catalog into SQLite so the API can
// serve it without the JSON files.
package catalogdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"modhome/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Save replaces the stored catalog with products in one transaction.
func (r *Repo) Save(ctx context.Context, products []models.Product) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, name, description, price, image, category, features)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		features := p.Features
		if features == nil {
			features = []string{}
		}
		featuresJSON, err := json.Marshal(features)
		if err != nil {
			return fmt.Errorf("marshal features for %d: %w", p.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Name, p.Description, p.Price, p.Image, p.Category, string(featuresJSON),
		); err != nil {
			return fmt.Errorf("insert product %d: %w", p.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO catalog_meta (key, value) VALUES ('saved_at', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("update meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Load returns the stored catalog ordered by id.
func (r *Repo) Load(ctx context.Context) ([]models.Product, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, description, price, image, category, features
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("load query: %w", err)
	}
	defer rows.Close()

	out := []models.Product{}
	for rows.Next() {
		var (
			p            models.Product
			featuresJSON string
		)
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Category, &featuresJSON,
		); err != nil {
			return nil, fmt.Errorf("load scan: %w", err)
		}
		if err := json.Unmarshal([]byte(featuresJSON), &p.Features); err != nil || p.Features == nil {
			p.Features = []string{}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// SavedAt reports when Save last ran; zero if never.
func (r *Repo) SavedAt(ctx context.Context) (time.Time, error) {
	var v string
	err := r.DB.QueryRowContext(ctx, `SELECT value FROM catalog_meta WHERE key = 'saved_at'`).Scan(&v)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("saved_at: %w", err)
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse saved_at: %w", err)
	}
	return t, nil
}
