package cache

import "html/template"

// Stylesheet is the chroma CSS for one syntax theme, shared by the preview and source panes.
type Stylesheet struct {
	CSS  template.CSS
	ETag string
}

var stylesheetCache = NewCache[string, Stylesheet]()

func GetStylesheet(syntaxTheme string) (Stylesheet, bool) {
	return stylesheetCache.Get(syntaxTheme)
}

func SetStylesheet(syntaxTheme string, sheet Stylesheet) {
	stylesheetCache.Set(syntaxTheme, sheet)
}

func DeleteStylesheet(syntaxTheme string) {
	stylesheetCache.Delete(syntaxTheme)
}
