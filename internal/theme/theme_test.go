package theme

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/debemdeboas/the-notebook/internal/cache"
	"github.com/debemdeboas/the-notebook/internal/config"
)

func init() {
	config.AppConfig = config.Default()
}

func requestWithCookies(cookies map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	return req
}

func TestStylesheet(t *testing.T) {
	for _, name := range []string{"monokai", "github", "catppuccin-latte", "nonexistent-theme-12345", ""} {
		t.Run(name, func(t *testing.T) {
			cache.DeleteStylesheet(name)

			sheet := Stylesheet(name)
			if !strings.Contains(string(sheet.CSS), ".chroma") {
				t.Errorf("Expected chroma CSS, got %q", sheet.CSS)
			}
			if sheet.ETag == "" {
				t.Error("Expected an ETag")
			}

			cached, ok := cache.GetStylesheet(name)
			if !ok || cached != sheet {
				t.Error("Expected generated stylesheet to be cached")
			}
			if again := Stylesheet(name); again != sheet {
				t.Error("Expected cached stylesheet on second call")
			}
		})
	}
}

func TestStylesheetDiffersPerTheme(t *testing.T) {
	if Stylesheet("monokai").ETag == Stylesheet("github").ETag {
		t.Error("Expected distinct stylesheets for distinct themes")
	}
}

func TestStyleFallsBack(t *testing.T) {
	if Style("nonexistent-theme-12345") != styles.Fallback {
		t.Error("Expected fallback style for unknown theme")
	}
	if Style("monokai") == styles.Fallback {
		t.Error("Expected monokai to resolve")
	}
}

func TestPaneFormatters(t *testing.T) {
	if Preview.String() != "preview" || Source.String() != "source" {
		t.Errorf("Unexpected pane names %s, %s", Preview, Source)
	}
	if Preview.Formatter() == nil || Source.Formatter() == nil {
		t.Error("Expected a formatter for each pane")
	}
}

func TestSyntaxThemes(t *testing.T) {
	themes := SyntaxThemes()
	if !slices.IsSorted(themes) {
		t.Error("Expected sorted theme names")
	}
	for _, name := range []string{"github", "monokai", config.DefaultDarkSyntaxTheme, config.DefaultLightSyntaxTheme} {
		if !slices.Contains(themes, name) || !IsSyntaxTheme(name) {
			t.Errorf("Expected %s to be available", name)
		}
	}
	if IsSyntaxTheme("nonexistent-theme-12345") {
		t.Error("Expected unknown theme to be rejected")
	}
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		cookies map[string]string
		want    Choice
	}{
		{
			name: "no cookies",
			want: Choice{Page: config.DarkTheme, Syntax: config.DefaultDarkSyntaxTheme},
		},
		{
			name:    "light theme picks light syntax",
			cookies: map[string]string{config.CookieTheme: config.LightTheme},
			want:    Choice{Page: config.LightTheme, Syntax: config.DefaultLightSyntaxTheme},
		},
		{
			name:    "syntax cookie wins",
			cookies: map[string]string{config.CookieTheme: config.LightTheme, config.CookieSyntaxTheme: "monokai"},
			want:    Choice{Page: config.LightTheme, Syntax: "monokai", ExplicitSyntax: true},
		},
		{
			name:    "unknown theme has no default syntax",
			cookies: map[string]string{config.CookieTheme: "sepia"},
			want:    Choice{Page: "sepia"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromRequest(requestWithCookies(tt.cookies)); got != tt.want {
				t.Errorf("FromRequest() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestToggled(t *testing.T) {
	tests := []struct {
		name string
		from Choice
		want Choice
	}{
		{
			name: "dark to light",
			from: Choice{Page: config.DarkTheme, Syntax: config.DefaultDarkSyntaxTheme},
			want: Choice{Page: config.LightTheme, Syntax: config.DefaultLightSyntaxTheme},
		},
		{
			name: "light to dark",
			from: Choice{Page: config.LightTheme, Syntax: config.DefaultLightSyntaxTheme},
			want: Choice{Page: config.DarkTheme, Syntax: config.DefaultDarkSyntaxTheme},
		},
		{
			name: "unknown goes dark",
			from: Choice{Page: "sepia"},
			want: Choice{Page: config.DarkTheme, Syntax: config.DefaultDarkSyntaxTheme},
		},
		{
			name: "picked syntax survives",
			from: Choice{Page: config.DarkTheme, Syntax: "monokai", ExplicitSyntax: true},
			want: Choice{Page: config.LightTheme, Syntax: "monokai", ExplicitSyntax: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.Toggled(); got != tt.want {
				t.Errorf("Toggled() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func BenchmarkStylesheet(b *testing.B) {
	b.Run("Cached", func(b *testing.B) {
		Stylesheet("monokai")
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			Stylesheet("monokai")
		}
	})

	b.Run("Uncached", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			cache.DeleteStylesheet("monokai")
			Stylesheet("monokai")
		}
	})
}
