package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cardly/internal/models"
	"cardly/internal/qr"
	"cardly/internal/render"
	"cardly/internal/store"
	"cardly/internal/vcard"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PublicLayout loads a card and composes it with its effective template.
// The returned card is never nil when err is nil.
func (a *API) PublicLayout(ctx context.Context, id, lang string) (*models.Card, *render.Layout, error) {
	card, err := a.store.GetCard(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var live *models.Template
	if card.TemplateID != "" {
		live, err = a.store.GetTemplate(ctx, card.TemplateID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, nil, err
		}
	}

	tpl, unavailable := render.EffectiveTemplate(card, live)
	if unavailable {
		a.log.Warn("template unavailable, rendering with defaults",
			zap.String("card_id", card.ID), zap.String("template_id", card.TemplateID))
	}

	layout := render.Compose(card, tpl, render.Options{
		Origin:     a.origin,
		Lang:       lang,
		Now:        a.now(),
		QRProvider: a.qrProvider,
	})
	layout.TemplateUnavailable = unavailable
	return card, layout, nil
}

// RecordView bumps a card's view counter. Failures are logged, not returned.
func (a *API) RecordView(ctx context.Context, id string) {
	if err := a.store.IncrementViews(ctx, id); err != nil {
		a.log.Warn("increment views", zap.String("card_id", id), zap.Error(err))
	}
}

// RequestLang picks "ar" from ?lang or Accept-Language, "en" otherwise.
func RequestLang(r *http.Request) string {
	if l := r.URL.Query().Get("lang"); l != "" {
		if strings.HasPrefix(strings.ToLower(l), "ar") {
			return "ar"
		}
		return "en"
	}
	for _, part := range strings.Split(r.Header.Get("Accept-Language"), ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		if tag == "" || tag == "*" {
			continue
		}
		if strings.HasPrefix(tag, "ar") {
			return "ar"
		}
		return "en"
	}
	return "en"
}

func (a *API) publicLayout(w http.ResponseWriter, r *http.Request) (*models.Card, *render.Layout, bool) {
	id := chi.URLParam(r, "id")
	card, layout, err := a.PublicLayout(r.Context(), id, RequestLang(r))
	if err != nil {
		a.storeError(w, err, "Card not found", zap.String("card_id", id))
		return nil, nil, false
	}
	return card, layout, true
}

func (a *API) getPublicCard(w http.ResponseWriter, r *http.Request) {
	card, layout, ok := a.publicLayout(w, r)
	if !ok {
		return
	}
	a.RecordView(r.Context(), card.ID)
	respondJSON(w, http.StatusOK, layout)
}

func (a *API) getCardQR(w http.ResponseWriter, r *http.Request) {
	_, layout, ok := a.publicLayout(w, r)
	if !ok {
		return
	}

	png, err := qr.PNG(layout.ShareURL, layout.Style.QRSize, layout.Style.QRColor, layout.Style.QRBgColor)
	if err != nil {
		a.serverError(w, "encode qr", err, zap.String("card_id", layout.CardID))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (a *API) getCardVCard(w http.ResponseWriter, r *http.Request) {
	card, layout, ok := a.publicLayout(w, r)
	if !ok {
		return
	}

	body, err := vcard.Encode(card, layout.Visible, layout.ShareURL)
	if err != nil {
		a.serverError(w, "encode vcard", err, zap.String("card_id", card.ID))
		return
	}

	w.Header().Set("Content-Type", vcard.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, vcard.Filename(card)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// streamCountdown sends the time left until membership expiry as
// server-sent events, one "data" event per tick and a final "expired" event.
func (a *API) streamCountdown(w http.ResponseWriter, r *http.Request) {
	card, layout, ok := a.publicLayout(w, r)
	if !ok {
		return
	}
	if !layout.Visible.Membership {
		respondError(w, http.StatusNotFound, "Membership is hidden on this card")
		return
	}

	target := render.ParseDate(card.MembershipExpiryDate)
	if target == nil {
		respondError(w, http.StatusNotFound, "Card has no expiry date")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	timer := render.NewCountdownTimer(*target)
	timer.Now = a.now
	timer.NewTicker = a.newTicker

	timer.Run(r.Context(), func(cd *render.Countdown) {
		if cd == nil {
			fmt.Fprint(w, "event: expired\ndata: {}\n\n")
			flusher.Flush()
			return
		}
		data, _ := json.Marshal(cd)
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	})
}
