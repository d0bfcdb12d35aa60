package receipt

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Data {
	return Data{
		Venue:       "Cine Latam",
		Folio:       "f2c6b9e0-1111-2222-3333-444455556666",
		Comprador:   "Ana Torres",
		Pelicula:    "El Laberinto",
		Funcion:     "2026-09-01",
		Hora:        "20:30:00",
		Turno:       "nocturno",
		Sala:        "Sala 3",
		Asientos:    []string{"A-1", "A-2", "B-3"},
		Metodo:      "tarjeta",
		Total:       150,
		FechaCompra: time.Date(2026, 8, 31, 18, 4, 5, 0, time.UTC),
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	d := sample()
	body := d.Render()

	assert.Equal(t, body, d.Render(), "same data renders the same bytes")
	assert.Contains(t, body, "Folio: f2c6b9e0-1111-2222-3333-444455556666")
	assert.Contains(t, body, "Asientos: A-1, A-2, B-3")
	assert.Contains(t, body, "Funcion: 2026-09-01 20:30:00 (nocturno)")
	assert.Contains(t, body, "Pago: tarjeta $150")
	assert.Contains(t, body, "Fecha de compra: 2026-08-31 18:04:05")
}

func TestQREncoderProducesBase64PNG(t *testing.T) {
	enc := QREncoder{}
	out, err := enc.Encode(sample().Render())
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(out)
	require.NoError(t, err)
	require.Greater(t, len(raw), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), raw[:8], "payload is a PNG")

	// Encoding is pure: a second attempt with the same body succeeds too.
	again, err := enc.Encode(sample().Render())
	require.NoError(t, err)
	assert.Equal(t, out, again)
}
