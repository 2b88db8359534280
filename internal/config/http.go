package config

const (
	HCType        = "Content-Type"
	HETag         = "ETag"
	HCacheControl = "Cache-Control"

	CTypeCSS  = "text/css"
	CTypeHTML = "text/html"
	CTypeJSON = "application/json"
)

const (
	HTTPErrMethodNotAllowed = "Method not allowed"
)

const (
	CookieTheme       = "theme"
	CookieSyntaxTheme = "syntax-theme"
)

const (
	EnvConfigPath     = "NOTEBOOK_CONFIG"
	EnvS3AccessKeyID  = "S3_ACCESS_KEY_ID"
	EnvS3SecretKey    = "S3_SECRET_ACCESS_KEY"
	DefaultConfigPath = "config.yaml"
)
