// Package render turns the editor buffer into an HTML preview with highlighted code blocks.
package render

import (
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/debemdeboas/the-notebook/internal/cache"
	"github.com/debemdeboas/the-notebook/internal/config"
	"github.com/debemdeboas/the-notebook/internal/theme"
	"github.com/debemdeboas/the-notebook/internal/util"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rs/zerolog"

	"github.com/mmarkdown/mmark/v2/lang"
	"github.com/mmarkdown/mmark/v2/mast"
	"github.com/mmarkdown/mmark/v2/mparser"
	"github.com/mmarkdown/mmark/v2/render/mhtml"
)

var renderLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

func HighlightCode(code, language, syntaxTheme string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := theme.Preview.Formatter().Format(&buf, theme.Style(syntaxTheme), iterator); err != nil {
		return code
	}

	return html.UnescapeString(buf.String())
}

func codeBlockHook(syntaxTheme string) func(w io.Writer, node ast.Node, entering bool) bool {
	return func(w io.Writer, node ast.Node, entering bool) bool {
		code, ok := node.(*ast.CodeBlock)
		if !ok || !entering {
			return false
		}
		var lang string
		if info := code.Info; info != nil {
			lang = string(info)
		}
		fmt.Fprintf(w, "<div class=\"highlight\">%s</div>", HighlightCode(string(code.Literal), lang, syntaxTheme))
		return true
	}
}

// RenderMarkdown renders md with the configured renderer and returns the front matter title, if any.
func RenderMarkdown(md []byte, renderer, syntaxTheme string) ([]byte, string) {
	switch renderer {
	case config.RendererClassic:
		return RenderMarkdownClassic(md, syntaxTheme)
	default:
		html, info := RenderMarkdownMmark(md, syntaxTheme)
		if info == nil {
			return html, ""
		}
		return html, info.Title
	}
}

// Serializes the check-render-set sequence in Preview.
var previewMutex sync.Mutex

// Preview renders the buffer content, reusing a cached rendering of identical content.
func Preview(content, renderer, syntaxTheme string) *cache.RenderedPreview {
	contentHash := util.ContentHashString(renderer + "\x00" + content)

	if cached, found := cache.GetPreview(contentHash, syntaxTheme); found {
		renderLogger.Debug().Str("contentHash", contentHash).Str("syntaxTheme", syntaxTheme).Msg("Cache hit for preview")
		return cached
	}

	previewMutex.Lock()
	defer previewMutex.Unlock()

	if cached, found := cache.GetPreview(contentHash, syntaxTheme); found {
		return cached
	}

	renderLogger.Debug().Str("contentHash", contentHash).Str("syntaxTheme", syntaxTheme).Msg("Cache miss for preview")
	html, title := RenderMarkdown([]byte(content), renderer, syntaxTheme)
	preview := &cache.RenderedPreview{HTML: html, Title: title}
	cache.SetPreview(contentHash, syntaxTheme, preview)
	return preview
}

// RenderMarkdownClassic renders CommonMark plus extensions. A leading %%% TOML block is read for the title
// and left out of the output.
func RenderMarkdownClassic(md []byte, syntaxTheme string) ([]byte, string) {
	var title string
	if info, body := util.SplitFrontMatter(md); info != nil {
		if info.TitleData != nil {
			title = info.Title
		}
		md = body
	}

	hook := codeBlockHook(syntaxTheme)
	opts := md_html.RendererOptions{
		Flags:    md_html.CommonFlags | md_html.HrefTargetBlank | md_html.FootnoteReturnLinks,
		Comments: [][]byte{[]byte("//"), []byte("#")},
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			if hook(w, node, entering) {
				return ast.GoToNext, true
			}

			if callout, ok := node.(*ast.Callout); ok && entering {
				fmt.Fprintf(w, "<span class=\"callout\">%s</span>", callout.ID)
				return ast.GoToNext, true
			}

			return ast.GoToNext, false
		},
	}

	doc := parser.NewWithExtensions(
		parser.Tables | parser.FencedCode | parser.Autolink | parser.Strikethrough | parser.SpaceHeadings |
			parser.HeadingIDs | parser.BackslashLineBreak | parser.SuperSubscript | parser.DefinitionLists | parser.MathJax |
			parser.AutoHeadingIDs | parser.Footnotes | parser.OrderedListStart | parser.Attributes |
			parser.NonBlockingSpace,
	).Parse(md)

	return markdown.Render(doc, md_html.NewRenderer(opts)), title
}

func RenderMarkdownMmark(md []byte, syntaxTheme string) ([]byte, *mast.TitleData) {
	md = markdown.NormalizeNewlines(md)

	p := parser.NewWithExtensions(mparser.Extensions | parser.NoIntraEmphasis)

	var info *mast.TitleData
	p.Opts = parser.Options{
		ParserHook: func(data []byte) (ast.Node, []byte, int) {
			node, data, consumed := mparser.Hook(data)
			if t, ok := node.(*mast.Title); ok {
				info = t.TitleData
			}
			return node, data, consumed
		},
		// Buffers never include files.
		ReadIncludeFn: func(_, _ string, _ []byte) []byte { return nil },
		Flags:         parser.FlagsNone,
	}

	doc := markdown.Parse(md, p)
	mparser.AddIndex(doc)

	language := "en"
	if info != nil && info.Language != "" {
		language = info.Language
	}
	mhtmlOpts := mhtml.RendererOptions{
		Language: lang.New(language),
	}

	hook := codeBlockHook(syntaxTheme)
	opts := md_html.RendererOptions{
		Comments: [][]byte{[]byte("//"), []byte("#")},
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			if hook(w, node, entering) {
				return ast.GoToNext, true
			}
			return mhtmlOpts.RenderHook(w, node, entering)
		},
		Flags: md_html.CommonFlags | md_html.FootnoteNoHRTag | md_html.FootnoteReturnLinks,
	}

	return markdown.Render(doc, md_html.NewRenderer(opts)), info
}
