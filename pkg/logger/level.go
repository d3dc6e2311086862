package logger

import (
	"fmt"
	"log/slog"
)

const (
	LevelCritical = slog.Level(12)
	LevelPanic    = slog.Level(14)
	LevelFatal    = slog.Level(16)
)

func levelAttrReplacer(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) != 0 || attr.Key != LevelKey {
		return attr
	}
	l, ok := attr.Value.Any().(slog.Level)
	if !ok || l < LevelCritical {
		return attr
	}

	str := func(base string, val slog.Level) string {
		if val == 0 {
			return base
		}
		return fmt.Sprintf("%s%+d", base, val)
	}
	switch {
	case l < LevelPanic:
		return slog.String(attr.Key, str("CRITICAL", l-LevelCritical))
	case l < LevelFatal:
		return slog.String(attr.Key, str("PANIC", l-LevelPanic))
	default:
		return slog.String(attr.Key, str("FATAL", l-LevelFatal))
	}
}

// gcpAttrReplacer renames the default attribute keys to the Cloud Logging ones.
func gcpAttrReplacer(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case MessageKey:
		attr.Key = "message"
	case SourceKey:
		attr.Key = "logging.googleapis.com/sourceLocation"
	case LevelKey:
		attr.Key = "severity"
		if lvl, ok := attr.Value.Any().(slog.Level); ok {
			attr.Value = slog.StringValue(gcpSeverity(lvl))
		}
	}
	return attr
}

// https://cloud.google.com/logging/docs/reference/v2/rest/v2/LogEntry#logseverity
func gcpSeverity(lvl slog.Level) string {
	switch {
	case lvl < slog.LevelInfo:
		return "DEBUG"
	case lvl < slog.LevelWarn:
		return "INFO"
	case lvl < slog.LevelError:
		return "WARNING"
	case lvl < LevelCritical:
		return "ERROR"
	case lvl < LevelPanic:
		return "CRITICAL"
	case lvl < LevelFatal:
		return "ALERT"
	default:
		return "EMERGENCY"
	}
}
