package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"reminder-engine/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	headerRequestID = "X-Request-ID"
	requestIDKey    = "request_id"
	maxRequestIDLen = 64
)

// probes and scrapers hit these every few seconds
var quietRoutes = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

type Logger struct {
	logger   *slog.Logger
	timezone *time.Location
}

// NewLogger writes to stdout and installs itself as the slog default.
func NewLogger(cfg config.LogConfig) *Logger {
	l := NewLoggerTo(os.Stdout, cfg)
	slog.SetDefault(l.logger)
	return l
}

// NewLoggerTo uses JSON in release mode and text otherwise.
func NewLoggerTo(w io.Writer, cfg config.LogConfig) *Logger {
	timezone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.In(timezone).Format(cfg.TimeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{logger: slog.New(handler), timezone: timezone}
}

func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

// LoggingMiddleware writes one access line per request. It logs the route
// template rather than the raw path, so client ids in unsubscribe links stay
// out of the logs.
func (l *Logger) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := l.requestID(c.GetHeader(headerRequestID))
		c.Set(requestIDKey, requestID)
		c.Header(headerRequestID, requestID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		surface := surfaceOf(route)

		attrs := make([]slog.Attr, 0, 11)
		attrs = append(attrs,
			slog.String("request_id", requestID),
			slog.String("surface", surface),
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.Int("status_code", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		)
		// tenant is only known after the auth middleware ran
		if tenantID, ok := GetTenantID(c); ok {
			attrs = append(attrs, slog.String("tenant_id", tenantID.String()))
		}
		if surface == "cron" && c.Request.URL.RawQuery != "" {
			attrs = append(attrs, slog.String("query", c.Request.URL.RawQuery))
		}
		if size := c.Writer.Size(); size > 0 {
			attrs = append(attrs, slog.Int("response_size", size))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		l.logger.LogAttrs(c.Request.Context(), levelFor(route, status), "request", attrs...)
	}
}

func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// requestID keeps an id set by the caller (the cron scheduler sets one) when it
// is short and plain, and generates one otherwise.
func (l *Logger) requestID(incoming string) string {
	if validRequestID(incoming) {
		return incoming
	}
	timestamp := time.Now().In(l.timezone).Format("20060102150405")

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("%s-fallback-%d", timestamp, time.Now().UnixNano()%100000000)
	}
	return timestamp + "-" + hex.EncodeToString(randomBytes)
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

func surfaceOf(route string) string {
	switch {
	case strings.HasPrefix(route, "/api/cron"):
		return "cron"
	case strings.HasPrefix(route, "/api/"):
		return "tenant"
	case strings.HasPrefix(route, "/unsub"):
		return "public"
	default:
		return "ops"
	}
}

func levelFor(route string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	case quietRoutes[route]:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
