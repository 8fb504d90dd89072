package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/coregx/qbuild/internal/logger"
)

// AuditLevel selects which statements are audited.
type AuditLevel int

const (
	// AuditNone disables auditing.
	AuditNone AuditLevel = iota
	// AuditWrites audits INSERT, UPDATE and DELETE.
	AuditWrites
	// AuditReads audits SELECT in addition to writes.
	AuditReads
	// AuditAll audits every statement, including CREATE and DROP.
	AuditAll
)

// Entry describes one executed statement.
type Entry struct {
	Operation    string
	Table        string
	SQL          string
	Params       []any
	RowsAffected int64
	Duration     time.Duration
	Err          error
}

// Auditor writes audit records to a logger. Parameter values are never
// logged; a SHA-256 digest of them is recorded instead.
type Auditor struct {
	logger logger.Logger
	level  AuditLevel
}

// NewAuditor returns an Auditor writing to l. A nil logger disables it.
func NewAuditor(l logger.Logger, level AuditLevel) *Auditor {
	if l == nil {
		level = AuditNone
		l = logger.NoopLogger{}
	}
	return &Auditor{logger: l, level: level}
}

// Record audits e if the auditor's level covers e.Operation.
func (a *Auditor) Record(ctx context.Context, e Entry) {
	if !a.covers(e.Operation) {
		return
	}

	args := []any{
		"operation", e.Operation,
		"table", e.Table,
		"sql", e.SQL,
		"params_hash", HashParams(e.Params),
		"rows_affected", e.RowsAffected,
		"duration_ms", e.Duration.Milliseconds(),
		"success", e.Err == nil,
	}
	args = append(args, contextAttrs(ctx)...)

	if e.Err != nil {
		a.logger.Warn("audit", append(args, "error", e.Err.Error())...)
		return
	}
	a.logger.Info("audit", args...)
}

// Blocked records a statement rejected before execution.
func (a *Auditor) Blocked(ctx context.Context, query string, err error) {
	if a.level == AuditNone {
		return
	}
	args := []any{"sql", query, "error", err.Error()}
	a.logger.Warn("statement blocked", append(args, contextAttrs(ctx)...)...)
}

func (a *Auditor) covers(op string) bool {
	switch a.level {
	case AuditWrites:
		return op == "INSERT" || op == "UPDATE" || op == "DELETE"
	case AuditReads:
		return op == "SELECT" || op == "INSERT" || op == "UPDATE" || op == "DELETE"
	case AuditAll:
		return true
	default:
		return false
	}
}

// HashParams returns a hex SHA-256 digest of params, or "" when empty.
func HashParams(params []any) string {
	if len(params) == 0 {
		return ""
	}
	h := sha256.New()
	for _, p := range params {
		_, _ = fmt.Fprintf(h, "%v\x00", p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

type contextKey string

const (
	userKey      contextKey = "qbuild:user"
	clientIPKey  contextKey = "qbuild:client_ip"
	requestIDKey contextKey = "qbuild:request_id"
)

// WithUser attaches the acting user to ctx for audit records.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// WithClientIP attaches the client address to ctx for audit records.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// WithRequestID attaches a request ID to ctx for audit records.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func contextAttrs(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var attrs []any
	for _, k := range []contextKey{userKey, clientIPKey, requestIDKey} {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			attrs = append(attrs, string(k)[len("qbuild:"):], v)
		}
	}
	return attrs
}
