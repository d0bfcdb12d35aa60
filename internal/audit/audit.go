// Package audit provides the append-only trail of who did what. Every
// state-changing operation records an entry, on success and on failure;
// recording itself is best-effort and never blocks the operation.
package audit

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/cinelatam/taquilla-api/internal/model"
	"github.com/cinelatam/taquilla-api/internal/repository"
)

// Meta carries the request-scoped facts attached to every audit entry.
type Meta struct {
	Usuario          string // actor identifier, "anonimo" when unauthenticated
	Host             string
	Navegador        string
	SistemaOperativo string
	TipoDispositivo  string
	DireccionIP      string
}

// Recorder receives audit events.
type Recorder interface {
	Record(ctx context.Context, meta Meta, accion string)
}

// DBRecorder persists audit entries to the logs table.
type DBRecorder struct {
	logs *repository.LogRepo
}

// NewDBRecorder returns a Recorder backed by the logs table.
func NewDBRecorder(logs *repository.LogRepo) *DBRecorder {
	return &DBRecorder{logs: logs}
}

// Record appends one entry. Failures are logged and swallowed so that an
// audit outage never turns a successful operation into an error.
func (r *DBRecorder) Record(ctx context.Context, meta Meta, accion string) {
	usuario := meta.Usuario
	if usuario == "" {
		usuario = "anonimo"
	}
	err := r.logs.Append(ctx, &model.LogEntry{
		Usuario:          usuario,
		Accion:           accion,
		FechaHora:        time.Now().UTC(),
		Host:             meta.Host,
		Navegador:        meta.Navegador,
		SistemaOperativo: meta.SistemaOperativo,
		TipoDispositivo:  meta.TipoDispositivo,
		DireccionIP:      meta.DireccionIP,
	})
	if err != nil {
		log.Printf("audit: append failed: %v", err)
	}
}

// Nop discards all events. Used in tests and when no database is wired.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(context.Context, Meta, string) {}

// ParseUserAgent derives coarse OS and device hints from a User-Agent
// header. The hints are informational only.
func ParseUserAgent(ua string) (so, dispositivo string) {
	so, dispositivo = "desconocido", "escritorio"
	lower := strings.ToLower(ua)
	switch {
	case strings.Contains(lower, "android"):
		so = "Android"
	case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"):
		so = "iOS"
	case strings.Contains(lower, "windows"):
		so = "Windows"
	case strings.Contains(lower, "mac os"), strings.Contains(lower, "macintosh"):
		so = "macOS"
	case strings.Contains(lower, "linux"):
		so = "Linux"
	}
	if strings.Contains(lower, "mobile") || strings.Contains(lower, "android") ||
		strings.Contains(lower, "iphone") {
		dispositivo = "movil"
	} else if strings.Contains(lower, "ipad") || strings.Contains(lower, "tablet") {
		dispositivo = "tableta"
	}
	return so, dispositivo
}
