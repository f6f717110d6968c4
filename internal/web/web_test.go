package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cardly/internal/models"
	"cardly/internal/render"
	"cardly/internal/store"
)

type fakeSource struct {
	cards map[string]*models.Card
	tpl   *models.Template
	err   error
	views []string
	langs []string
}

func (f *fakeSource) PublicLayout(ctx context.Context, id, lang string) (*models.Card, *render.Layout, error) {
	f.langs = append(f.langs, lang)
	if f.err != nil {
		return nil, nil, f.err
	}
	card, ok := f.cards[id]
	if !ok {
		return nil, nil, fmt.Errorf("get card %s: %w", id, store.ErrNotFound)
	}
	layout := render.Compose(card, f.tpl, render.Options{
		Origin: "https://cards.example",
		Lang:   lang,
		Now:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	layout.TemplateUnavailable = card.TemplateID != "" && f.tpl == nil
	return card, layout, nil
}

func (f *fakeSource) RecordView(ctx context.Context, id string) {
	f.views = append(f.views, id)
}

func testCard() *models.Card {
	return &models.Card{
		ID:       "jane-doe",
		Name:     "Jane <Doe>",
		Title:    "Engineer",
		Bio:      "Builds things.",
		Emails:   []string{"jane@example.com"},
		Websites: []string{"example.com"},
		Phone:    "+1 555 0100",
		SocialLinks: []models.SocialLink{
			{PlatformID: "github", Platform: "GitHub", URL: "https://github.com/jane"},
		},
		SpecialLinks: []models.SpecialLink{
			{ID: "promo", ImageURL: "https://cdn.example/promo.jpg", LinkURL: "javascript:alert(1)", TitleEn: "Promo"},
		},
		MembershipExpiryDate: "2025-03-16",
		AvatarURL:            "https://cdn.example/jane.jpg",
	}
}

func get(t *testing.T, h *Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)
	return w
}

func TestCardPage(t *testing.T) {
	src := &fakeSource{cards: map[string]*models.Card{"jane-doe": testCard()}}
	h := New(src, nil)

	w := get(t, h, "/jane-doe", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected HTML, got %s", ct)
	}
	body := w.Body.String()

	t.Run("presentation", func(t *testing.T) {
		for _, want := range []string{
			`<html lang="en" dir="ltr">`,
			`<title>Jane &lt;Doe&gt; | Engineer</title>`,
			`<link rel="icon" href="https://cdn.example/jane.jpg">`,
			`<meta property="og:url" content="https://cards.example/jane-doe">`,
			`<meta name="description" content="Builds things.">`,
			`--card-accent:`,
		} {
			if !strings.Contains(body, want) {
				t.Errorf("Page missing %q", want)
			}
		}
	})

	t.Run("sections", func(t *testing.T) {
		for _, want := range []string{
			`class="card-header`,
			`mailto:jane@example.com`,
			`href="tel:&#43;15550100"`,
			`class="social-github"`,
			`class="card-section membership"`,
			`days left`,
			`class="share link" href="https://cards.example/jane-doe"`,
		} {
			if !strings.Contains(body, want) {
				t.Errorf("Page missing %q", want)
			}
		}
	})

	t.Run("escapes content", func(t *testing.T) {
		if strings.Contains(body, "<Doe>") {
			t.Error("Name was not escaped")
		}
		if strings.Contains(body, "javascript:") {
			t.Error("Unsafe link scheme leaked into the page")
		}
		if !strings.Contains(body, `<a href="#" rel="noopener"`) {
			t.Error("Expected the unsafe special link to be neutralised")
		}
	})

	t.Run("records the view", func(t *testing.T) {
		if len(src.views) != 1 || src.views[0] != "jane-doe" {
			t.Errorf("Expected one view of jane-doe, got %v", src.views)
		}
	})
}

func TestCardPageArabic(t *testing.T) {
	src := &fakeSource{cards: map[string]*models.Card{"jane-doe": testCard()}}
	h := New(src, nil)

	w := get(t, h, "/jane-doe", map[string]string{"Accept-Language": "ar"})
	if !strings.Contains(w.Body.String(), `<html lang="ar" dir="rtl">`) {
		t.Error("Expected an rtl document")
	}
	if src.langs[0] != "ar" {
		t.Errorf("Expected ar to be requested, got %s", src.langs[0])
	}
}

func TestCardPageShareButtonHidden(t *testing.T) {
	card := testCard()
	card.ShowShareButton = boolPtr(false)
	h := New(&fakeSource{cards: map[string]*models.Card{"jane-doe": card}}, nil)

	if body := get(t, h, "/jane-doe", nil).Body.String(); strings.Contains(body, `class="share link"`) {
		t.Error("Share action should be hidden")
	}
}

func boolPtr(b bool) *bool { return &b }

func TestCardPageTemplateUnavailable(t *testing.T) {
	card := testCard()
	card.TemplateID = "deleted"
	h := New(&fakeSource{cards: map[string]*models.Card{"jane-doe": card}}, nil)

	w := get(t, h, "/jane-doe", nil)
	if !strings.Contains(w.Body.String(), `class="notice"`) {
		t.Error("Expected a notice when the template is unavailable")
	}
}

func TestCardPageNotFound(t *testing.T) {
	src := &fakeSource{cards: map[string]*models.Card{}}
	h := New(src, nil)

	w := get(t, h, "/nobody", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Card not found") {
		t.Error("Expected the not-found page")
	}
	if len(src.views) != 0 {
		t.Error("Missing cards must not count views")
	}

	if w := get(t, h, "/a/b", nil); w.Code != http.StatusNotFound {
		t.Errorf("Nested path: expected 404, got %d", w.Code)
	}
}

func TestCardPageError(t *testing.T) {
	h := New(&fakeSource{err: errors.New("db down")}, nil)

	w := get(t, h, "/jane-doe", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
}

func TestRootCSS(t *testing.T) {
	got := rootCSS(map[string]string{
		"--b":       "#fff",
		"--a":       "rgba(0,0,0,0.5)",
		"--evil":    "red;}body{display:none",
		"not-a-var": "#000",
	})
	want := ":root{--a:rgba(0,0,0,0.5);--b:#fff;}"
	if string(got) != want {
		t.Errorf("rootCSS = %q, want %q", got, want)
	}
}

func TestSafeHref(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://example.com/x", "https://example.com/x"},
		{"mailto:a@b.c", "mailto:a@b.c"},
		{"tel:+15550100", "tel:+15550100"},
		{"javascript:alert(1)", "#"},
		{"data:text/html,hi", "#"},
		{"/relative", "#"},
	}
	for _, tt := range tests {
		if got := string(safeHref(tt.in)); got != tt.want {
			t.Errorf("safeHref(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
