package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeySKU        = "sku"
	KeyState      = "state"
	KeyCategory   = "category"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyArtifacts  = "artifacts"
	KeyProducts   = "products"
	KeyStates     = "states"
	KeyEventID    = "event_id"
	KeyOrderID    = "order_id"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRemoteAddr = "remote_addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func SKU(s string) slog.Attr          { return slog.String(KeySKU, s) }
func State(s string) slog.Attr        { return slog.String(KeyState, s) }
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Artifacts(n int) slog.Attr       { return slog.Int(KeyArtifacts, n) }
func Products(n int) slog.Attr        { return slog.Int(KeyProducts, n) }
func States(n int) slog.Attr          { return slog.Int(KeyStates, n) }
func EventID(id string) slog.Attr     { return slog.String(KeyEventID, id) }
func OrderID(id string) slog.Attr     { return slog.String(KeyOrderID, id) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
