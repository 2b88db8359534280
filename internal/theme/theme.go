// Package theme resolves the page and syntax themes a notebook client renders with, and builds the chroma
// formatters and stylesheet used by the preview and source panes.
package theme

import (
	"html/template"
	"net/http"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/debemdeboas/the-notebook/internal/cache"
	"github.com/debemdeboas/the-notebook/internal/config"
	"github.com/debemdeboas/the-notebook/internal/util"
)

// Choice is the pair of themes a client asked for through its cookies.
type Choice struct {
	Page   string
	Syntax string

	// Set when the syntax theme came from the syntax cookie rather than the page theme's default.
	ExplicitSyntax bool
}

// FromRequest reads the theme cookies, falling back to the configured defaults.
func FromRequest(r *http.Request) Choice {
	c := Choice{Page: config.AppConfig.Theme.Default}
	if cookie, err := r.Cookie(config.CookieTheme); err == nil {
		c.Page = cookie.Value
	}

	c.Syntax = DefaultSyntax(c.Page)
	if cookie, err := r.Cookie(config.CookieSyntaxTheme); err == nil {
		c.Syntax = cookie.Value
		c.ExplicitSyntax = true
	}
	return c
}

// Toggled switches between the dark and light page themes. Any page theme other than dark becomes dark.
// A syntax theme the client picked itself survives the switch.
func (c Choice) Toggled() Choice {
	next := Choice{Page: config.DarkTheme, Syntax: c.Syntax, ExplicitSyntax: c.ExplicitSyntax}
	if c.Page == config.DarkTheme {
		next.Page = config.LightTheme
	}
	if !c.ExplicitSyntax {
		next.Syntax = DefaultSyntax(next.Page)
	}
	return next
}

// DefaultSyntax is the configured syntax theme for a page theme, or "" for an unknown page theme.
func DefaultSyntax(page string) string {
	switch page {
	case config.LightTheme:
		return config.AppConfig.Theme.SyntaxHighlighting.DefaultLight
	case config.DarkTheme:
		return config.AppConfig.Theme.SyntaxHighlighting.DefaultDark
	}
	return ""
}

// IsSyntaxTheme reports whether chroma knows name.
func IsSyntaxTheme(name string) bool {
	return slices.Contains(styles.Names(), name)
}

func SyntaxThemes() []string {
	names := styles.Names()
	slices.Sort(names)
	return names
}

// Style returns the chroma style for name, or chroma's fallback.
func Style(name string) *chroma.Style {
	if style, ok := styles.Registry[name]; ok {
		return style
	}
	return styles.Fallback
}

// Pane is a part of the page that shows highlighted text.
type Pane int

const (
	// Preview holds fenced code blocks of the rendered buffer.
	Preview Pane = iota
	// Source is the raw buffer, highlighted as markdown.
	Source
)

func (p Pane) String() string {
	if p == Source {
		return "source"
	}
	return "preview"
}

// Formatter returns the chroma HTML formatter for the pane. Both emit classes, so one stylesheet serves both.
func (p Pane) Formatter() *html.Formatter {
	if p == Source {
		return html.New(
			html.WithClasses(true),
			html.WithLineNumbers(false),
			html.PreventSurroundingPre(true),
		)
	}
	return html.New(
		html.WithClasses(true),
		html.TabWidth(4),
		html.WithLineNumbers(true),
		html.WrapLongLines(true),
	)
}

// lightTextRule darkens plain text for styles that only set a light background.
func lightTextRule(style *chroma.Style) string {
	bg := style.Get(chroma.Background)
	if bg.Colour.IsSet() {
		return ""
	}
	luminance := (0.299*float64(bg.Background.Red()) +
		0.587*float64(bg.Background.Green()) +
		0.114*float64(bg.Background.Blue())) / 255
	if luminance > 0.5 {
		return ".chroma { color: #181818; }\n"
	}
	return ""
}

// Stylesheet returns the cached chroma CSS for a syntax theme, generating it on first use.
func Stylesheet(syntaxTheme string) cache.Stylesheet {
	if sheet, ok := cache.GetStylesheet(syntaxTheme); ok {
		return sheet
	}

	style := Style(syntaxTheme)

	var buf strings.Builder
	buf.WriteString(lightTextRule(style))
	if err := Preview.Formatter().WriteCSS(&buf, style); err != nil {
		return cache.Stylesheet{}
	}

	sheet := cache.Stylesheet{
		CSS:  template.CSS(buf.String()),
		ETag: util.ContentHashString(buf.String()),
	}
	cache.SetStylesheet(syntaxTheme, sheet)
	return sheet
}
