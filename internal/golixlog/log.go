// Package golixlog is the structured logging seam used throughout
// golix's identity and object-minting paths. It never logs secret
// material (keys, MAC keys, shared secrets, plaintext) — only GUIDs,
// cipher ids, and correlation ids.
package golixlog

import "go.uber.org/zap"

// Logger wraps a *zap.Logger. A nil or zero-value Logger discards
// everything, like Noop; use New for a logger that writes.
type Logger struct {
	z *zap.Logger
}

// Noop returns a Logger that discards everything, the default for
// library use that hasn't opted into logging.
func Noop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// New builds a production JSON logger at the given level ("debug",
// "info", "warn", "error"). An unrecognized level falls back to "info".
func New(level string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

func (l *Logger) zap() *zap.Logger {
	if l == nil || l.z == nil {
		return zap.NewNop()
	}
	return l.z
}

// IdentityEvent logs an identity lifecycle event (generation,
// deserialization) by GUID and cipher id.
func (l *Logger) IdentityEvent(event, guid string, cipher uint8) {
	l.zap().Debug(event, zap.String("guid", guid), zap.Uint8("cipher", cipher))
}

// ObjectEvent logs an object-minting or verification event by kind and
// GUID.
func (l *Logger) ObjectEvent(event, kind, guid string) {
	l.zap().Debug(event, zap.String("kind", kind), zap.String("guid", guid))
}

// RequestEvent logs a GARQ lifecycle event, tagged with a per-call
// correlation id so the events of one request-minting call can be
// matched in logs; it records the recipient, never the author.
func (l *Logger) RequestEvent(event, correlationID, recipient string) {
	l.zap().Debug(event, zap.String("request_id", correlationID), zap.String("recipient", recipient))
}

// SecurityFailure logs a security-class verification failure. It never
// takes the failing data or key material, only the GUID and error code,
// so a verbose log level still can't leak an oracle.
func (l *Logger) SecurityFailure(code, guid string) {
	l.zap().Warn("security_check_failed", zap.String("code", code), zap.String("guid", guid))
}
