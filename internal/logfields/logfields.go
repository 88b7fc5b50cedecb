package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyDocID      = "doc_id"
	KeyPath       = "path"
	KeyCategory   = "category"
	KeyAsset      = "asset"
	KeyCount      = "count"
	KeyDataFile   = "data_file"
	KeyStatus     = "status"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func DocID(id string) slog.Attr       { return slog.String(KeyDocID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func Asset(a string) slog.Attr        { return slog.String(KeyAsset, a) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DataFile(p string) slog.Attr     { return slog.String(KeyDataFile, p) }
func Status(s string) slog.Attr       { return slog.String(KeyStatus, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
