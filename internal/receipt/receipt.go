// Package receipt renders the purchase receipt handed back after a
// successful reservation: a deterministic text body plus a scannable QR
// image. Rendering is pure and happens strictly after commit, so a
// failure here never rolls back an issued ticket.
package receipt

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// Data is everything a receipt shows. Callers assemble it from the
// reservation result; nothing here reaches back into storage.
type Data struct {
	Venue       string
	Folio       string
	Comprador   string
	Pelicula    string
	Funcion     string // date of the showing, "YYYY-MM-DD"
	Hora        string // "HH:MM:SS"
	Turno       string
	Sala        string
	Asientos    []string // seat labels, "A-1"
	Metodo      string
	Total       uint32
	FechaCompra time.Time
}

// Render produces the printable text body. The layout is stable: tests
// and the QR payload both depend on it byte for byte.
func (d Data) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", d.Venue)
	fmt.Fprintf(&b, "Folio: %s\n", d.Folio)
	fmt.Fprintf(&b, "Cliente: %s\n", d.Comprador)
	fmt.Fprintf(&b, "Pelicula: %s\n", d.Pelicula)
	fmt.Fprintf(&b, "Funcion: %s %s (%s)\n", d.Funcion, d.Hora, d.Turno)
	fmt.Fprintf(&b, "Sala: %s\n", d.Sala)
	fmt.Fprintf(&b, "Asientos: %s\n", strings.Join(d.Asientos, ", "))
	fmt.Fprintf(&b, "Pago: %s $%d\n", d.Metodo, d.Total)
	fmt.Fprintf(&b, "Fecha de compra: %s\n", d.FechaCompra.UTC().Format("2006-01-02 15:04:05"))
	return b.String()
}

// Encoder turns a receipt body into a scannable image.
type Encoder interface {
	Encode(payload string) (string, error)
}

// QREncoder encodes receipts as base64 PNG QR codes.
type QREncoder struct {
	// Size is the image side in pixels; zero means 256.
	Size int
}

// Encode implements Encoder.
func (e QREncoder) Encode(payload string) (string, error) {
	size := e.Size
	if size == 0 {
		size = 256
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
