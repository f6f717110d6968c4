package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cardly/internal/models"
	"cardly/internal/slug"
	"cardly/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200

	// maxOwnerCards bounds the scan for images shared between cards.
	maxOwnerCards = 1000
)

// cardRules validates the user-editable parts of a card beyond its id.
type cardRules struct {
	Name        string   `validate:"max=200"`
	Emails      []string `validate:"dive,email"`
	ThemeType   string   `validate:"omitempty,oneof=color gradient image"`
	AvatarURL   string   `validate:"omitempty,url"`
	LocationURL string   `validate:"omitempty,url"`
}

func (a *API) validateCard(c *models.Card) error {
	return a.validate.Struct(cardRules{
		Name:        c.Name,
		Emails:      c.Emails,
		ThemeType:   c.ThemeType,
		AvatarURL:   c.AvatarURL,
		LocationURL: c.LocationURL,
	})
}

// loadCard fetches a card the current user may edit: its owner or an admin.
func (a *API) loadCard(w http.ResponseWriter, r *http.Request) (*models.Card, bool) {
	user := getUserFromContext(r)
	id := chi.URLParam(r, "id")

	var card *models.Card
	var err error
	if user.IsAdmin {
		card, err = a.store.GetCard(r.Context(), id)
	} else {
		card, err = a.store.GetCardForOwner(r.Context(), id, user.ID)
	}
	if err != nil {
		a.storeError(w, err, "Card not found", zap.String("card_id", id))
		return nil, false
	}
	return card, true
}

func pagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (a *API) listCards(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	limit, offset := pagination(r)

	ownerID := user.ID
	if user.IsAdmin && r.URL.Query().Get("all") == "1" {
		ownerID = ""
	}

	cards, err := a.store.ListCards(r.Context(), ownerID, limit, offset)
	if err != nil {
		a.serverError(w, "list cards", err)
		return
	}
	if cards == nil {
		cards = []models.Card{}
	}
	respondJSON(w, http.StatusOK, cards)
}

func (a *API) createCard(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var card models.Card
	if !a.decode(w, r, &card) {
		return
	}
	if err := a.validateCard(&card); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if card.TemplateID != "" {
		if _, err := a.store.GetTemplate(r.Context(), card.TemplateID); err != nil {
			a.storeError(w, err, "Template not found")
			return
		}
	}

	card.OwnerID = user.ID
	if err := a.store.CreateCard(r.Context(), &card); err != nil {
		a.storeError(w, err, "Card not found", zap.String("card_id", card.ID))
		return
	}

	a.log.Info("card created", zap.String("card_id", card.ID), zap.String("owner_id", user.ID))
	respondJSON(w, http.StatusCreated, card)
}

func (a *API) getCard(w http.ResponseWriter, r *http.Request) {
	card, ok := a.loadCard(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (a *API) updateCard(w http.ResponseWriter, r *http.Request) {
	existing, ok := a.loadCard(w, r)
	if !ok {
		return
	}

	var card models.Card
	if !a.decode(w, r, &card) {
		return
	}
	if err := a.validateCard(&card); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	// The stored snapshot is server-managed
	card.TemplateSnapshot = existing.TemplateSnapshot
	if card.TemplateID != "" && card.TemplateID != existing.TemplateID {
		if _, err := a.store.GetTemplate(r.Context(), card.TemplateID); err != nil {
			a.storeError(w, err, "Template not found")
			return
		}
	}

	if err := a.store.UpdateCard(r.Context(), existing.ID, &card); err != nil {
		a.storeError(w, err, "Card not found", zap.String("card_id", existing.ID))
		return
	}

	if card.ID != existing.ID {
		a.log.Info("card renamed", zap.String("from", existing.ID), zap.String("to", card.ID))
	}
	a.releaseImages(r.Context(), existing, &card)
	respondJSON(w, http.StatusOK, card)
}

func (a *API) deleteCard(w http.ResponseWriter, r *http.Request) {
	card, ok := a.loadCard(w, r)
	if !ok {
		return
	}

	if err := a.store.DeleteCard(r.Context(), card.ID); err != nil {
		a.storeError(w, err, "Card not found", zap.String("card_id", card.ID))
		return
	}
	a.releaseImages(r.Context(), card, nil)

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// cardImages lists the image URLs a card references.
func cardImages(c *models.Card) []string {
	if c == nil {
		return nil
	}
	urls := []string{c.AvatarURL, c.BackgroundImage, c.BodyFeatureImageURL}
	for _, sl := range c.SpecialLinks {
		urls = append(urls, sl.ImageURL)
	}
	return urls
}

// releaseImages deletes uploaded objects that before referenced and that
// neither after nor any other card of the owner still uses. after is nil when
// the card was deleted. Failures are logged.
func (a *API) releaseImages(ctx context.Context, before, after *models.Card) {
	if a.uploader == nil {
		return
	}
	others, err := a.store.ListCards(ctx, before.OwnerID, maxOwnerCards, 0)
	if err != nil {
		a.log.Warn("list cards for image cleanup", zap.String("owner_id", before.OwnerID), zap.Error(err))
		return
	}
	kept := make(map[string]bool)
	for _, u := range cardImages(after) {
		kept[u] = true
	}
	for i := range others {
		for _, u := range cardImages(&others[i]) {
			kept[u] = true
		}
	}
	done := make(map[string]bool)
	for _, u := range cardImages(before) {
		if u == "" || kept[u] || done[u] {
			continue
		}
		done[u] = true
		key := a.uploader.KeyFromURL(u)
		if key == "" {
			continue
		}
		if err := a.uploader.Delete(ctx, key); err != nil {
			a.log.Warn("delete image", zap.String("key", key), zap.Error(err))
			continue
		}
		a.log.Debug("deleted image", zap.String("key", key))
	}
}

// Slug handlers

func (a *API) checkSlug(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	id := slug.Normalize(chi.URLParam(r, "slug"))

	status, err := a.store.CheckSlug(r.Context(), id, user.ID)
	if err != nil {
		a.serverError(w, "check slug", err, zap.String("slug", id))
		return
	}

	resp := map[string]string{"slug": id, "status": string(status)}
	if status == slug.Invalid {
		resp["error"] = slug.Validate(id).Error()
	}
	respondJSON(w, http.StatusOK, resp)
}

// suggestSlug proposes a free id derived from free text, trying numbered
// variants when the plain one is taken.
func (a *API) suggestSlug(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	base := slug.Slugify(r.URL.Query().Get("from"))
	if len(base) < 3 {
		base = strings.Trim(base+"-card", "-")
	}
	if slug.Validate(base) != nil {
		respondJSON(w, http.StatusOK, map[string]string{"slug": "", "status": string(slug.Invalid)})
		return
	}

	for i := 1; i <= 20; i++ {
		candidate := base
		if i > 1 {
			suffix := "-" + strconv.Itoa(i)
			if len(candidate)+len(suffix) > slug.MaxLen {
				candidate = strings.TrimRight(candidate[:slug.MaxLen-len(suffix)], "-")
			}
			candidate += suffix
		}
		status, err := a.store.CheckSlug(r.Context(), candidate, user.ID)
		if err != nil {
			a.serverError(w, "suggest slug", err)
			return
		}
		if status == slug.Available {
			respondJSON(w, http.StatusOK, map[string]string{"slug": candidate, "status": string(status)})
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{"slug": "", "status": string(slug.Taken)})
}

// Upload handler

const maxUploadBytes = 10 << 20

func (a *API) upload(w http.ResponseWriter, r *http.Request) {
	if a.uploader == nil {
		respondError(w, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	url, err := a.uploader.UploadImage(r.Context(), file)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) {
			respondError(w, http.StatusBadRequest, "File is not an image")
			return
		}
		a.serverError(w, "upload image", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}
