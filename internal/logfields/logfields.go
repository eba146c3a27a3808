package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyPass       = "pass"
	KeyTarget     = "target"
	KeyLabel      = "label"
	KeyIndex      = "index"
	KeyFigures    = "figures"
	KeyReferences = "references"
	KeyDangling   = "dangling"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyLayout     = "layout"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Pass(name string) slog.Attr      { return slog.String(KeyPass, name) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Label(l string) slog.Attr        { return slog.String(KeyLabel, l) }
func Index(i int) slog.Attr           { return slog.Int(KeyIndex, i) }
func Figures(n int) slog.Attr         { return slog.Int(KeyFigures, n) }
func References(n int) slog.Attr      { return slog.Int(KeyReferences, n) }
func Dangling(n int) slog.Attr        { return slog.Int(KeyDangling, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Layout(l string) slog.Attr       { return slog.String(KeyLayout, l) }

// Duration converts d to a DurationMS attribute.
func Duration(d time.Duration) slog.Attr {
	return DurationMS(float64(d) / float64(time.Millisecond))
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
