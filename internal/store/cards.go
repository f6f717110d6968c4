package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cardly/internal/models"
	"cardly/internal/slug"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Card operations. A card is stored as a JSON document keyed by its public
// id; owner, template and view count are also columns.

const cardColumns = `id, owner_id, template_id, data, views, created_at, updated_at`

func scanCard(row scanner) (*models.Card, error) {
	var c models.Card
	var id, ownerID, templateID, data string
	var views int64
	var createdAt, updatedAt time.Time
	if err := row.Scan(&id, &ownerID, &templateID, &data, &views, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("decode card %s: %w", id, err)
	}
	c.ID = id
	c.OwnerID = ownerID
	c.TemplateID = templateID
	c.Views = views
	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt
	return &c, nil
}

// CheckSlug reports whether id can be used by owner. Malformed ids are
// Invalid without touching the database; an id already owned by owner is
// Available to it.
func (s *Store) CheckSlug(ctx context.Context, id, ownerID string) (slug.Status, error) {
	if slug.Validate(id) != nil {
		return slug.Invalid, nil
	}

	var existingOwner string
	err := s.queryRow(ctx, `SELECT owner_id FROM cards WHERE id = ?`, id).Scan(&existingOwner)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return slug.Available, nil
		}
		return "", err
	}
	if existingOwner == ownerID {
		return slug.Available, nil
	}
	return slug.Taken, nil
}

// snapshotTemplate copies the card's live template onto it. When the
// template is gone a snapshot of the same template is kept as is.
func (s *Store) snapshotTemplate(ctx context.Context, c *models.Card) error {
	if c.TemplateID == "" {
		c.TemplateSnapshot = nil
		return nil
	}
	tpl, err := s.GetTemplate(ctx, c.TemplateID)
	switch {
	case err == nil:
		c.TemplateSnapshot = tpl
	case errors.Is(err, ErrNotFound):
		if c.TemplateSnapshot != nil && c.TemplateSnapshot.ID != c.TemplateID {
			c.TemplateSnapshot = nil
		}
		s.log.Warn("card references missing template",
			zap.String("card_id", c.ID), zap.String("template_id", c.TemplateID))
	default:
		return err
	}
	return nil
}

// assignLinkIDs gives every special link without an id a fresh one.
func assignLinkIDs(c *models.Card) {
	for i := range c.SpecialLinks {
		if c.SpecialLinks[i].ID == "" {
			c.SpecialLinks[i].ID = uuid.New().String()
		}
	}
}

func encodeCard(c *models.Card) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Store) CreateCard(ctx context.Context, c *models.Card) error {
	c.ID = slug.Normalize(c.ID)
	if err := slug.Validate(c.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrSlugInvalid, err)
	}
	if err := s.snapshotTemplate(ctx, c); err != nil {
		return err
	}

	assignLinkIDs(c)
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Views = 0

	data, err := encodeCard(c)
	if err != nil {
		return err
	}
	// The primary key decides races between concurrent creates
	_, err = s.exec(ctx,
		`INSERT INTO cards (`+cardColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.OwnerID, c.TemplateID, data, c.Views, c.CreatedAt, c.UpdatedAt,
	)
	return slugTaken(err)
}

func (s *Store) GetCard(ctx context.Context, id string) (*models.Card, error) {
	c, err := scanCard(s.queryRow(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id))
	return c, notFound(err)
}

// GetCardForOwner returns the card only when ownerID owns it.
func (s *Store) GetCardForOwner(ctx context.Context, id, ownerID string) (*models.Card, error) {
	c, err := s.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return c, nil
}

// ListCards lists every card, newest first. ownerID filters when not empty.
func (s *Store) ListCards(ctx context.Context, ownerID string, limit, offset int) ([]models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args := []interface{}{limit, offset}
	if ownerID != "" {
		query = `SELECT ` + cardColumns + ` FROM cards WHERE owner_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`
		args = []interface{}{ownerID, limit, offset}
	}

	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	return cards, rows.Err()
}

// UpdateCard saves c over the card currently stored as oldID. When c.ID
// differs the card is renamed, provided the new id is free. Owner, views and
// creation time are kept from the stored card.
func (s *Store) UpdateCard(ctx context.Context, oldID string, c *models.Card) error {
	existing, err := s.GetCard(ctx, oldID)
	if err != nil {
		return err
	}

	c.ID = slug.Normalize(c.ID)
	if c.ID == "" {
		c.ID = oldID
	}
	if c.ID != oldID {
		if err := slug.Validate(c.ID); err != nil {
			return fmt.Errorf("%w: %v", ErrSlugInvalid, err)
		}
		if _, err := s.GetCard(ctx, c.ID); err == nil {
			return ErrSlugTaken
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	c.OwnerID = existing.OwnerID
	c.Views = existing.Views
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	assignLinkIDs(c)
	if err := s.snapshotTemplate(ctx, c); err != nil {
		return err
	}

	data, err := encodeCard(c)
	if err != nil {
		return err
	}
	res, err := s.exec(ctx,
		`UPDATE cards SET id = ?, template_id = ?, data = ?, updated_at = ? WHERE id = ?`,
		c.ID, c.TemplateID, data, c.UpdatedAt, oldID,
	)
	return affected(res, slugTaken(err))
}

func (s *Store) DeleteCard(ctx context.Context, id string) error {
	res, err := s.exec(ctx, `DELETE FROM cards WHERE id = ?`, id)
	return affected(res, err)
}

// IncrementViews bumps a card's public view counter.
func (s *Store) IncrementViews(ctx context.Context, id string) error {
	res, err := s.exec(ctx, `UPDATE cards SET views = views + 1 WHERE id = ?`, id)
	return affected(res, err)
}
