package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/example/macrocam/internal/config"
)

var allowedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// CORS applies the origin allow-list. Any request, preflight or not, whose
// Origin is not listed is aborted with 403 before the handler runs. Listed
// origins may use any method, send credentials and request any header: the
// preflight answers with the headers the browser asked for. A config.AnyOrigin
// entry admits every origin; the request origin is echoed back rather than a
// literal "*" so credentials keep working.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: allowedMethods,
		AllowHeaders: []string{
			"Origin",
			"Accept",
			"Content-Type",
			RequestIDHeader,
		},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if slices.Contains(allowedOrigins, config.AnyOrigin) {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	handler := cors.New(cfg)

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
				c.Writer = &preflightWriter{ResponseWriter: c.Writer, requested: requested}
			}
		}
		handler(c)
	}
}

// preflightWriter replaces the static Access-Control-Allow-Headers list with
// the requested headers once the origin has been accepted.
type preflightWriter struct {
	gin.ResponseWriter
	requested string
	mirrored  bool
}

func (w *preflightWriter) mirrorHeaders() {
	header := w.ResponseWriter.Header()
	if w.mirrored || w.ResponseWriter.Written() || header.Get("Access-Control-Allow-Origin") == "" {
		return
	}
	w.mirrored = true
	header.Set("Access-Control-Allow-Headers", w.requested)
	header.Add("Vary", "Access-Control-Request-Headers")
}

func (w *preflightWriter) WriteHeader(code int) {
	w.mirrorHeaders()
	w.ResponseWriter.WriteHeader(code)
}

func (w *preflightWriter) WriteHeaderNow() {
	w.mirrorHeaders()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *preflightWriter) Write(data []byte) (int, error) {
	w.mirrorHeaders()
	return w.ResponseWriter.Write(data)
}
