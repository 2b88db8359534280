package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/debemdeboas/the-notebook/internal/config"
	"github.com/debemdeboas/the-notebook/internal/editor"
	"github.com/debemdeboas/the-notebook/internal/model"
	"github.com/debemdeboas/the-notebook/internal/render"
	"github.com/debemdeboas/the-notebook/internal/session"
	"github.com/debemdeboas/the-notebook/internal/sse"
	"github.com/debemdeboas/the-notebook/internal/theme"
	"github.com/debemdeboas/the-notebook/internal/util"
	"github.com/rs/zerolog"
)

var routesLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	routesLogger = l
}

const emptyPreview = "Start typing in the editor to see a preview here."

type Handler struct {
	session  *session.Session
	widget   editor.Widget
	clients  *sse.SSEClients
	renderer string
}

// NewHandler serves s. widget is the buffer s edits; the view echoes its content.
func NewHandler(s *session.Session, widget editor.Widget, clients *sse.SSEClients, renderer string) *Handler {
	return &Handler{
		session:  s,
		widget:   widget,
		clients:  clients,
		renderer: renderer,
	}
}

// Notify tells subscribers the view changed. It never blocks.
func (h *Handler) Notify() {
	h.clients.Broadcast(sse.EventView)
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc(HealthCheck, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc(APIView, h.serveView)
	mux.HandleFunc(APISidebarToggle, h.action(func(*http.Request) error {
		h.session.ToggleSidebar()
		return nil
	}))

	mux.HandleFunc(APIDocumentCreate, h.action(func(*http.Request) error {
		return h.session.CreateDocument()
	}))
	mux.HandleFunc(APIDocumentOpen, h.action(func(r *http.Request) error {
		return h.session.SwitchTo(model.DocumentID(r.PathValue("id")))
	}))
	mux.HandleFunc(APIDocumentDelete, h.action(func(r *http.Request) error {
		h.session.RequestDelete(model.DocumentID(r.PathValue("id")))
		return nil
	}))
	mux.HandleFunc(APIDeleteConfirm, h.action(func(*http.Request) error {
		return h.session.ConfirmDelete()
	}))
	mux.HandleFunc(APIDeleteCancel, h.action(func(*http.Request) error {
		h.session.CancelDelete()
		return nil
	}))

	mux.HandleFunc(APISave, h.action(func(*http.Request) error {
		return h.session.ManualSave()
	}))
	mux.HandleFunc(APITitle, h.action(func(r *http.Request) error {
		h.session.SetTitle(r.FormValue("title"))
		if r.FormValue("commit") == "1" {
			return h.session.CommitTitle()
		}
		return nil
	}))
	mux.HandleFunc(APIEditor, h.serveEditor)
	mux.HandleFunc(APICopy, h.action(func(r *http.Request) error {
		return h.session.CopyCurrentContent(r.Context())
	}))

	mux.HandleFunc(PartialsPreview, h.servePreview)
	mux.HandleFunc(PartialsSource, h.serveSource)
	mux.HandleFunc(SyntaxThemeGet, serveSyntaxThemeGetTheme)
	mux.HandleFunc(SyntaxThemeSet, serveSyntaxThemePostSet)
	mux.HandleFunc(ThemeToggle, serveThemePostToggle)
	mux.HandleFunc(SSEEvents, h.eventsHandler)
}

// viewResponse is the view plus the live buffer.
type viewResponse struct {
	session.View
	Content string `json:"content"`
}

func (h *Handler) writeView(w http.ResponseWriter, status int) {
	resp := viewResponse{
		View:    h.session.View(),
		Content: h.widget.Value(),
	}

	w.Header().Set(config.HCType, config.CTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		routesLogger.Error().Err(err).Msg("Failed to encode view")
	}
}

func (h *Handler) serveView(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, http.StatusOK)
}

// action runs fn and answers with the resulting view.
func (h *Handler) action(fn func(r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(r); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, session.ErrNoPendingDelete) {
				status = http.StatusConflict
			}
			routesLogger.Error().Err(err).Str("path", r.URL.Path).Msg("Action failed")
			http.Error(w, err.Error(), status)
			return
		}
		h.writeView(w, http.StatusOK)
	}
}

func (h *Handler) serveEditor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, ok := r.PostForm["content"]; !ok {
		http.Error(w, "content required", http.StatusBadRequest)
		return
	}

	// The client names what it was editing: doc=<id>, or draft=1 before the first save.
	target := model.DocumentID(r.PostForm.Get("doc"))
	if (target == "") == (r.PostForm.Get("draft") != "1") {
		http.Error(w, "exactly one of doc or draft=1 required", http.StatusBadRequest)
		return
	}

	if err := h.session.Edit(target, r.PostForm.Get("content")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrStaleEdit) {
			status = http.StatusConflict
		}
		routesLogger.Warn().Err(err).Str("doc_id", string(target)).Msg("Edit rejected")
		http.Error(w, err.Error(), status)
		return
	}

	h.clients.Broadcast(sse.EventPreview)
	h.writeView(w, http.StatusOK)
}

func (h *Handler) servePreview(w http.ResponseWriter, r *http.Request) {
	content := h.session.Value()
	if content == "" {
		content = emptyPreview
	}

	preview := render.Preview(content, h.renderer, theme.FromRequest(r).Syntax)

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.Header().Set(config.HETag, util.ContentHash(preview.HTML))
	w.WriteHeader(http.StatusOK)
	if preview.Title != "" {
		fmt.Fprintf(w, "<title>%s</title>\n", template.HTMLEscapeString(preview.Title))
	}
	w.Write(preview.HTML)
}

func (h *Handler) serveSource(w http.ResponseWriter, r *http.Request) {
	highlighted, err := render.HighlightSource(h.session.Value(), theme.FromRequest(r).Syntax)
	if err != nil {
		routesLogger.Warn().Err(err).Msg("Failed to highlight source")
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(highlighted))
}

func (h *Handler) eventsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HCType, "text/event-stream")
	w.Header().Set(config.HCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Del("X-Content-Type-Options")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, "event: connected\ndata: SSE connection established\n\n")
	flusher.Flush()

	client := sse.NewClient()
	h.clients.Add(client)
	routesLogger.Debug().Int("clients", h.clients.Len()).Msg("SSE client connected")

	defer func() {
		h.clients.Delete(client)
		routesLogger.Debug().Msg("SSE client disconnected")
	}()

	done := r.Context().Done()
	for {
		select {
		case msg := <-client.Msg:
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-done:
			return
		}
	}
}
