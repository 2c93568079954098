package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const corsPreflightMaxAge = 12 * time.Hour

// newCORSMiddleware allows the admin panel to call the API from another origin.
// It returns nil when CORS is off or no usable origin is configured. A "*"
// entry opens the public API to any origin and disables credentials.
func newCORSMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	wildcard := false
	var origins []string
	for _, origin := range splitCommaList(allowOrigins) {
		switch {
		case origin == "*":
			wildcard = true
		case strings.HasPrefix(origin, "https://"), strings.HasPrefix(origin, "http://"):
			origins = append(origins, strings.TrimSuffix(origin, "/"))
		default:
			logger.Warn("ignoring CORS origin without scheme", slog.String("origin", origin))
		}
	}

	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
		},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        corsPreflightMaxAge,
	}

	switch {
	case wildcard:
		cfg.AllowAllOrigins = true
		logger.Warn("CORS allows any origin; admin credentials are not shared cross-origin")
	case len(origins) > 0:
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
		logger.Info("CORS enabled", slog.Any("origins", origins))
	default:
		logger.Warn("CORS enabled without a usable origin; not applied")
		return nil
	}

	return cors.New(cfg)
}

// splitCommaList splits value on commas, trimming blanks. Used for CORS
// origins and trusted proxy CIDRs.
func splitCommaList(value string) []string {
	var items []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
