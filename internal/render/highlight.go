package render

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/debemdeboas/the-notebook/internal/theme"
)

var markdownLexer = func() chroma.Lexer {
	lexer := lexers.Get("markdown")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}()

// HighlightSource renders the raw editor buffer for the source pane. Line breaks become <br> so the pane
// lines up with the textarea. On error the buffer is returned as is.
func HighlightSource(source string, syntaxTheme string) (string, error) {
	iterator, err := markdownLexer.Tokenise(nil, source)
	if err != nil {
		return source, err
	}

	var buf bytes.Buffer
	if err := theme.Source.Formatter().Format(&buf, theme.Style(syntaxTheme), iterator); err != nil {
		return source, err
	}

	lines := strings.Split(buf.String(), "\n")
	return `<div class="markdown-editor">` + strings.Join(lines, "<br>\n") + `</div>`, nil
}
