package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gridironhq/gridiron/internal/platform/logging"
)

// RouterConfig carries everything the HTTP surface needs beyond the handler
// itself.
type RouterConfig struct {
	Handler          *Handler
	Verifier         TokenVerifier
	InternalJobToken string
	AllowedOrigins   []string
	Logger           *logging.Logger
}

// NewRouter assembles the full middleware chain around the route table.
// Tracing sits outermost so the request log and panic recovery both run
// inside the server span.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerRoutes(mux, cfg.Handler, cfg.Verifier, cfg.InternalJobToken, logger)

	var handler http.Handler = mux
	handler = recoverPanic(logger, handler)
	handler = CORS(cfg.AllowedOrigins, handler)
	handler = RequestLogging(logger, handler)
	handler = RequestTracing(handler)
	return handler
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				writeInternalError(r.Context(), logger, w, fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
