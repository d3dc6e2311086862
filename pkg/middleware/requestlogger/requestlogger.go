package requestlogger

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/pkg/logger"
	"github.com/gaze-network/event-horizon/pkg/middleware/requestcontext"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type Config struct {
	WithRequestHeader    bool     `mapstructure:"request_header"`
	WithRequestQuery     bool     `mapstructure:"request_query"`
	Disable              bool     `mapstructure:"disable"` // Disable logger level `INFO`
	HiddenRequestHeaders []string `mapstructure:"hidden_request_headers"`

	// SkipPaths are never logged unless the request fails, E.g. health checks
	// and metrics scrapes.
	SkipPaths []string `mapstructure:"skip_paths"`
}

// New logs every completed request. Server errors are logged at error level,
// client errors at warn level.
func New(config Config) fiber.Handler {
	hiddenRequestHeaders := lo.SliceToMap(config.HiddenRequestHeaders, func(header string) (string, struct{}) {
		return strings.TrimSpace(strings.ToLower(header)), struct{}{}
	})
	skipPaths := lo.SliceToMap(config.SkipPaths, func(path string) (string, struct{}) {
		return path, struct{}{}
	})
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Continue stack
		err := c.Next()

		latency := time.Since(start)
		status := c.Response().StatusCode()

		var level slog.Level
		switch {
		case err != nil || status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		default:
			level = slog.LevelInfo
		}
		if level == slog.LevelInfo {
			if _, skip := skipPaths[c.Path()]; skip || config.Disable {
				return errors.WithStack(err)
			}
		}

		baseAttrs := []slog.Attr{
			slog.String("event", "api_request"),
			slog.Int64("latency", latency.Milliseconds()),
			slog.String("latencyHuman", latency.String()),
		}
		if level == slog.LevelError {
			logErr := err
			if logErr == nil {
				logErr = fiber.NewError(status)
			}
			baseAttrs = append(baseAttrs, slog.Any("error", logErr))
		}

		requestAttributes := []slog.Attr{
			slog.Time("time", start),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("route", c.Route().Path),
			slog.String("requestId", requestcontext.GetRequestId(c.UserContext())),
			slog.String("ip", requestcontext.GetClientIP(c.UserContext())),
			slog.String("user-agent", string(c.Context().UserAgent())),
			slog.Any("params", c.AllParams()),
			slog.Int("length", len(c.Body())),
		}
		if config.WithRequestQuery {
			requestAttributes = append(requestAttributes, slog.String("query", string(c.Request().URI().QueryString())))
		}
		if config.WithRequestHeader {
			kv := []any{}
			for k, v := range c.GetReqHeaders() {
				if _, found := hiddenRequestHeaders[strings.ToLower(k)]; found {
					continue
				}
				kv = append(kv, slog.Any(k, v))
			}
			requestAttributes = append(requestAttributes, slog.Group("header", kv...))
		}

		responseAttributes := []slog.Attr{
			slog.Int("status", status),
			slog.Int("length", len(c.Response().Body())),
		}

		logger.LogAttrs(c.UserContext(), level, "Request Completed", append([]slog.Attr{
			{
				Key:   "request",
				Value: slog.GroupValue(requestAttributes...),
			},
			{
				Key:   "response",
				Value: slog.GroupValue(responseAttributes...),
			},
		}, baseAttrs...)...,
		)

		return errors.WithStack(err)
	}
}
