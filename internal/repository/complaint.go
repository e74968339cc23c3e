// Package repository is the Postgres-backed complaint store used by
// deployments that outgrow the flat JSON document. It satisfies the same
// Store contract; append ordering falls out of created_at rather than
// physical prepends.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/civicpulse/civicpulse/internal/store"
)

// ComplaintRepository wraps all SQL used throughout the API and worker.
type ComplaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository constructs a repository.
func NewComplaintRepository(pool *pgxpool.Pool) *ComplaintRepository {
	return &ComplaintRepository{pool: pool}
}

// Append inserts a complaint. Uniqueness of id is enforced by the primary
// key, so a repeated append of the same record fails loudly instead of
// silently duplicating.
func (r *ComplaintRepository) Append(ctx context.Context, c *model.Complaint) error {
	location, err := marshalNullable(c.Location, c.Location == nil)
	if err != nil {
		return fmt.Errorf("encode location: %w", err)
	}
	image, err := marshalNullable(c.Image, c.Image == nil)
	if err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	analysis, err := marshalNullable(c.Analysis, c.Analysis == nil)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO complaints (id, created_at, status, category, main_category, sub_category, description, location, user_phone, user_id, user_name, image, analysis)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`, c.ID, c.CreatedAt, c.Status, nullable(c.Category), c.MainCategory, c.SubCategory, c.Description,
		location, nullable(c.UserPhone), nullable(c.UserID), nullable(c.UserName), image, analysis)
	if err != nil {
		return fmt.Errorf("insert complaint: %w", err)
	}
	return nil
}

// ListAll returns the collection newest-first. Ties on created_at break on
// id so repeated reads stay stable.
func (r *ComplaintRepository) ListAll(ctx context.Context) ([]model.Complaint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, created_at, status, COALESCE(category,''), main_category, sub_category, description, location, COALESCE(user_phone,''), COALESCE(user_id,''), COALESCE(user_name,''), image, analysis
		FROM complaints
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("select complaints: %w", err)
	}
	defer rows.Close()
	out := []model.Complaint{}
	for rows.Next() {
		var (
			c        model.Complaint
			location []byte
			image    []byte
			analysis []byte
		)
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.Status, &c.Category, &c.MainCategory, &c.SubCategory,
			&c.Description, &location, &c.UserPhone, &c.UserID, &c.UserName, &image, &analysis); err != nil {
			return nil, fmt.Errorf("scan complaint: %w", err)
		}
		if err := unmarshalNullable(location, &c.Location); err != nil {
			return nil, fmt.Errorf("decode location: %w", err)
		}
		if err := unmarshalNullable(image, &c.Image); err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		if err := unmarshalNullable(analysis, &c.Analysis); err != nil {
			return nil, fmt.Errorf("decode analysis: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate complaints: %w", err)
	}
	return out, nil
}

// SetAnalysis attaches advisory metadata to a complaint that has none yet.
func (r *ComplaintRepository) SetAnalysis(ctx context.Context, id string, a *model.Analysis) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE complaints SET analysis=$1 WHERE id=$2 AND analysis IS NULL
	`, payload, id)
	if err != nil {
		return fmt.Errorf("update analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the id is unknown or an analysis already exists; look the
		// row up to tell the two apart.
		var exists bool
		err := r.pool.QueryRow(ctx, `SELECT TRUE FROM complaints WHERE id=$1`, id).Scan(&exists)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("set analysis for %s: %w", id, store.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("check complaint: %w", err)
		}
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func marshalNullable(v any, isNil bool) ([]byte, error) {
	if isNil {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalNullable[T any](raw []byte, dst **T) error {
	if len(raw) == 0 {
		*dst = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}
