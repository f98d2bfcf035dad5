package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyDurationMS = "duration_ms"
	KeyService    = "service"
	KeyConnected  = "connected"
	KeyURL        = "url"
	KeyAddr       = "addr"
	KeyEnv        = "environment"
	KeySubject    = "subject"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr    { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr    { return slog.String(KeyRemoteAddr, a) }
func Service(name string) slog.Attr    { return slog.String(KeyService, name) }
func Connected(ok bool) slog.Attr      { return slog.Bool(KeyConnected, ok) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Addr(a string) slog.Attr          { return slog.String(KeyAddr, a) }
func Environment(env string) slog.Attr { return slog.String(KeyEnv, env) }
func Subject(s string) slog.Attr       { return slog.String(KeySubject, s) }

func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
