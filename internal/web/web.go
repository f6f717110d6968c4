// Package web serves the public card page as server-rendered HTML.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"sort"
	"strings"

	"cardly/internal/api"
	"cardly/internal/models"
	"cardly/internal/render"
	"cardly/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Source composes public cards. *api.API implements it.
type Source interface {
	PublicLayout(ctx context.Context, id, lang string) (*models.Card, *render.Layout, error)
	RecordView(ctx context.Context, id string)
}

type Handler struct {
	src  Source
	log  *zap.Logger
	tmpl *template.Template
}

func New(src Source, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	tmpl := template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
	return &Handler{src: src, log: log, tmpl: tmpl}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{cardId}", h.card)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.notFound(w)
	})
	return r
}

type metaTag struct {
	Name     string
	Property string
	Content  string
}

type page struct {
	Lang    string
	Dir     string
	Title   string
	Favicon string
	Meta    []metaTag
	RootCSS template.CSS
	Layout  *render.Layout
	Notice  string
}

func (h *Handler) card(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "cardId")

	card, layout, err := h.src.PublicLayout(r.Context(), id, api.RequestLang(r))
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w)
		return
	}
	if err != nil {
		h.log.Error("compose card", zap.String("card_id", id), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.src.RecordView(r.Context(), card.ID)

	p := newPage(layout)
	if layout.TemplateUnavailable {
		p.Notice = "This card's design is no longer available and is shown with default styling."
	}
	h.render(w, http.StatusOK, "card.html", p)
}

func newPage(l *render.Layout) page {
	pr := l.Presentation
	p := page{
		Lang:    pr.Lang,
		Dir:     pr.Dir,
		Title:   pr.DocumentTitle,
		Favicon: pr.FaviconURL,
		RootCSS: rootCSS(pr.CSSVariables),
		Layout:  l,
	}

	keys := make([]string, 0, len(pr.MetaTags))
	for k := range pr.MetaTags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tag := metaTag{Content: pr.MetaTags[k]}
		if strings.HasPrefix(k, "og:") {
			tag.Property = k
		} else {
			tag.Name = k
		}
		p.Meta = append(p.Meta, tag)
	}
	return p
}

// rootCSS renders the custom properties as a :root rule, sorted by name.
// Values that could escape the declaration are dropped.
func rootCSS(vars map[string]string) template.CSS {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root{")
	for _, k := range keys {
		v := cssValue(vars[k])
		if v == "" || !strings.HasPrefix(k, "--") || strings.ContainsAny(k, unsafeCSS+" :") {
			continue
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(string(v))
		b.WriteByte(';')
	}
	b.WriteByte('}')
	return template.CSS(b.String())
}

func (h *Handler) notFound(w http.ResponseWriter) {
	h.render(w, http.StatusNotFound, "notfound.html", page{Lang: "en", Dir: "ltr", Title: "Card not found"})
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.Error("render page", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
