package store

import (
	"context"
	"encoding/json"
	"time"

	"cardly/internal/models"

	"github.com/google/uuid"
)

// Template operations. The full template is stored as a JSON document;
// id and name are also columns for listing.

func (s *Store) CreateTemplate(ctx context.Context, t *models.Template) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	data, err := json.Marshal(t)
	if err != nil {
		return err
	}

	_, err = s.exec(ctx,
		`INSERT INTO templates (id, name, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, string(data), t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func scanTemplate(row scanner) (*models.Template, error) {
	var t models.Template
	var data string
	var createdAt, updatedAt time.Time
	if err := row.Scan(&t.ID, &t.Name, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, err
	}
	t.CreatedAt = createdAt
	t.UpdatedAt = updatedAt
	return &t, nil
}

func (s *Store) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	t, err := scanTemplate(s.queryRow(ctx,
		`SELECT id, name, data, created_at, updated_at FROM templates WHERE id = ?`, id))
	return t, notFound(err)
}

func (s *Store) ListTemplates(ctx context.Context) ([]models.Template, error) {
	rows, err := s.query(ctx, `SELECT id, name, data, created_at, updated_at FROM templates ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// UpdateTemplate replaces a template. Cards pick up the change on their next
// render; their stored snapshots refresh on their next save.
func (s *Store) UpdateTemplate(ctx context.Context, t *models.Template) error {
	existing, err := s.GetTemplate(ctx, t.ID)
	if err != nil {
		return err
	}
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(t)
	if err != nil {
		return err
	}

	res, err := s.exec(ctx,
		`UPDATE templates SET name = ?, data = ?, updated_at = ? WHERE id = ?`,
		t.Name, string(data), t.UpdatedAt, t.ID,
	)
	return affected(res, err)
}

// DeleteTemplate removes a template. Cards that reference it keep rendering
// from the snapshot saved with them.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	res, err := s.exec(ctx, `DELETE FROM templates WHERE id = ?`, id)
	return affected(res, err)
}

// TemplateRefs counts the cards that reference a template.
func (s *Store) TemplateRefs(ctx context.Context, id string) (int, error) {
	var n int
	err := s.queryRow(ctx, `SELECT COUNT(*) FROM cards WHERE template_id = ?`, id).Scan(&n)
	return n, err
}
