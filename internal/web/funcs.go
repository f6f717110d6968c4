package web

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"cardly/internal/render"
)

// unsafeCSS are the characters that could end a declaration or open markup.
const unsafeCSS = ";{}<>\\`"

var funcs = template.FuncMap{
	"kind": func(s render.Section) string { return string(s.Kind()) },
	"css":  cssValue,
	"href": safeHref,
	"seq": func(n int) []int {
		if n < 0 {
			n = 0
		}
		return make([]int, n)
	},
	"percent": func(v float64) string {
		return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(v, 'f', 1, 64), "0"), ".") + "%"
	},
}

// cssValue passes a resolved style value into a style attribute. Values
// containing declaration or markup delimiters are dropped.
func cssValue(s string) template.CSS {
	if strings.ContainsAny(s, unsafeCSS) || strings.Contains(strings.ToLower(s), "expression") {
		return ""
	}
	return template.CSS(s)
}

// safeHref allows web, mail and phone links; anything else becomes "#".
func safeHref(s string) template.URL {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return "#"
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto", "tel":
		return template.URL(u.String())
	}
	return "#"
}
