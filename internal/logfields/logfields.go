package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyComponent  = "component"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyURL        = "url"
	KeyArtifact   = "artifact"
	KeyCount      = "count"
	KeyStage      = "stage"
	KeyReason     = "reason"
	KeyDurationMS = "duration_ms"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyRequestID  = "request_id"
	KeyOutDir     = "out_dir"
	KeyError      = "error"
)

// ComponentName tags every warning emitted by the artifact pipeline.
const ComponentName = "llmstxt"

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Component() slog.Attr             { return slog.String(KeyComponent, ComponentName) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Artifact(p string) slog.Attr      { return slog.String(KeyArtifact, p) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func Reason(r string) slog.Attr        { return slog.String(KeyReason, r) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr    { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func OutDir(dir string) slog.Attr      { return slog.String(KeyOutDir, dir) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
