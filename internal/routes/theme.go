package routes

import (
	"fmt"
	"net/http"

	"github.com/debemdeboas/the-notebook/internal/config"
	"github.com/debemdeboas/the-notebook/internal/theme"
)

func serveThemePostToggle(w http.ResponseWriter, r *http.Request) {
	next := theme.FromRequest(r).Toggled()

	http.SetCookie(w, &http.Cookie{
		Name:  config.CookieTheme,
		Value: next.Page,
		Path:  "/",
	})

	w.Header().Set("Hx-Trigger", fmt.Sprintf(`{"themeChanged":{"value":"%s","syntaxTheme":"%s"}}`, next.Page, next.Syntax))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(next.Page))
}

func serveSyntaxThemePostSet(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("syntax-theme-select")
	if name == "" {
		http.Error(w, "theme required", http.StatusBadRequest)
		return
	}
	if !theme.IsSyntaxTheme(name) {
		http.Error(w, "unknown theme", http.StatusNotFound)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieSyntaxTheme,
		Value:    name,
		Path:     "/",
		HttpOnly: true,
	})

	writeStylesheet(w, r, name)
}

func serveSyntaxThemeGetTheme(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("theme")
	if !theme.IsSyntaxTheme(name) {
		http.NotFound(w, r)
		return
	}

	writeStylesheet(w, r, name)
}

// writeStylesheet answers 304 when the client already holds the stylesheet.
func writeStylesheet(w http.ResponseWriter, r *http.Request, syntaxTheme string) {
	sheet := theme.Stylesheet(syntaxTheme)

	w.Header().Set(config.HETag, sheet.ETag)
	if r.Method == http.MethodGet && r.Header.Get("If-None-Match") == sheet.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set(config.HCType, config.CTypeCSS)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(sheet.CSS))
}
