// Package routes exposes the notebook session over HTTP.
package routes

const (
	SSEPath = "/sse"

	// Views
	APIView          = "GET /api/view"
	PartialsPreview  = "GET /partials/preview"
	PartialsSource   = "GET /partials/source"
	SyntaxThemeGet   = "GET /syntax-theme/{theme}"
	SyntaxThemeSet   = "POST /syntax-theme/set"
	ThemeToggle      = "POST /theme/toggle"
	SSEEvents        = "GET " + SSEPath
	HealthCheck      = "GET /healthz"
	APISidebarToggle = "POST /api/sidebar/toggle"

	// Documents
	APIDocumentCreate = "POST /api/documents"
	APIDocumentOpen   = "POST /api/documents/{id}/open"
	APIDocumentDelete = "POST /api/documents/{id}/delete"
	APIDeleteConfirm  = "POST /api/delete/confirm"
	APIDeleteCancel   = "POST /api/delete/cancel"

	// Editing
	APISave   = "POST /api/save"
	APITitle  = "POST /api/title"
	APIEditor = "POST /api/editor"
	APICopy   = "POST /api/copy"
)
