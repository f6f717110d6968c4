package api

import (
	"net/http"
	"strings"

	"cardly/internal/models"
	"cardly/internal/render"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// templateRules validates the enumerated fields of a template.
type templateRules struct {
	Name           string `validate:"required,max=100"`
	HeaderType     string `validate:"omitempty,headershape"`
	DesktopLayout  string `validate:"omitempty,oneof=full-width-header centered-card"`
	PageBgStrategy string `validate:"omitempty,oneof=solid mirror-header"`
}

func (a *API) validateTemplate(t *models.Template) error {
	return a.validate.Struct(templateRules{
		Name:           t.Name,
		HeaderType:     t.HeaderType,
		DesktopLayout:  t.DesktopLayout,
		PageBgStrategy: t.PageBgStrategy,
	})
}

func (a *API) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := a.store.ListTemplates(r.Context())
	if err != nil {
		a.serverError(w, "list templates", err)
		return
	}
	if templates == nil {
		templates = []models.Template{}
	}
	respondJSON(w, http.StatusOK, templates)
}

func (a *API) getTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tpl, err := a.store.GetTemplate(r.Context(), id)
	if err != nil {
		a.storeError(w, err, "Template not found", zap.String("template_id", id))
		return
	}
	respondJSON(w, http.StatusOK, tpl)
}

func (a *API) createTemplate(w http.ResponseWriter, r *http.Request) {
	var tpl models.Template
	if !a.decode(w, r, &tpl) {
		return
	}
	tpl.Name = strings.TrimSpace(tpl.Name)
	if err := a.validateTemplate(&tpl); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	tpl.ID = ""
	if err := a.store.CreateTemplate(r.Context(), &tpl); err != nil {
		a.serverError(w, "create template", err)
		return
	}

	a.log.Info("template created", zap.String("template_id", tpl.ID), zap.String("name", tpl.Name))
	respondJSON(w, http.StatusCreated, tpl)
}

func (a *API) updateTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var tpl models.Template
	if !a.decode(w, r, &tpl) {
		return
	}
	tpl.Name = strings.TrimSpace(tpl.Name)
	if err := a.validateTemplate(&tpl); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	tpl.ID = id
	if err := a.store.UpdateTemplate(r.Context(), &tpl); err != nil {
		a.storeError(w, err, "Template not found", zap.String("template_id", id))
		return
	}

	updated, err := a.store.GetTemplate(r.Context(), id)
	if err != nil {
		a.storeError(w, err, "Template not found", zap.String("template_id", id))
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// deleteTemplate removes a template. Cards using it fall back to their
// snapshot; the count of such cards is reported.
func (a *API) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	refs, err := a.store.TemplateRefs(r.Context(), id)
	if err != nil {
		a.serverError(w, "count template refs", err, zap.String("template_id", id))
		return
	}

	if err := a.store.DeleteTemplate(r.Context(), id); err != nil {
		a.storeError(w, err, "Template not found", zap.String("template_id", id))
		return
	}

	if refs > 0 {
		a.log.Warn("template deleted while in use",
			zap.String("template_id", id), zap.Int("cards", refs))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"orphanedCards": refs,
	})
}

// sampleCard is the content shown in template previews.
func sampleCard(user *models.User) *models.Card {
	name := user.DisplayName
	if name == "" {
		name = user.Username
	}
	return &models.Card{
		ID:       "preview",
		OwnerID:  user.ID,
		Name:     name,
		Title:    "Product Designer",
		Company:  "Example Co.",
		Bio:      "Designing things people enjoy using.",
		Emails:   []string{user.Email},
		Websites: []string{"example.com"},
		Phone:    "+1 555 0100",
		WhatsApp: "+1 555 0101",
		SocialLinks: []models.SocialLink{
			{PlatformID: "linkedin", Platform: "LinkedIn", URL: "https://linkedin.com/in/example"},
			{PlatformID: "instagram", Platform: "Instagram", URL: "https://instagram.com/example"},
			{PlatformID: "x", Platform: "X", URL: "https://x.com/example"},
		},
		LocationURL:   "https://maps.example.com/?q=example",
		LocationLabel: "Downtown",
		ThemeType:     models.ThemeColor,
	}
}

func (a *API) renderPreview(w http.ResponseWriter, r *http.Request, tpl *models.Template) {
	layout := render.Compose(sampleCard(getUserFromContext(r)), tpl, render.Options{
		Origin:     a.origin,
		Lang:       RequestLang(r),
		Now:        a.now(),
		QRProvider: a.qrProvider,
	})
	respondJSON(w, http.StatusOK, layout)
}

func (a *API) previewTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tpl, err := a.store.GetTemplate(r.Context(), id)
	if err != nil {
		a.storeError(w, err, "Template not found", zap.String("template_id", id))
		return
	}
	a.renderPreview(w, r, tpl)
}

// previewDraftTemplate renders an unsaved template from the request body.
func (a *API) previewDraftTemplate(w http.ResponseWriter, r *http.Request) {
	var tpl models.Template
	if !a.decode(w, r, &tpl) {
		return
	}
	a.renderPreview(w, r, &tpl)
}
