package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelatam/taquilla-api/internal/audit"
	"github.com/cinelatam/taquilla-api/internal/model"
	"github.com/cinelatam/taquilla-api/internal/repository"
)

func postJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestSalaCreateRejectsBrokenGrid(t *testing.T) {
	h := &SalaHandler{}

	cases := []struct {
		name string
		body string
	}{
		{"total mismatch", `{"nombreSala":"Sala 1","cantidadAsientos":10,"cantidadFilas":2,"asientosPorFila":3}`},
		{"zero rows", `{"nombreSala":"Sala 1","cantidadAsientos":0,"cantidadFilas":0,"asientosPorFila":3}`},
		{"missing name", `{"cantidadAsientos":6,"cantidadFilas":2,"asientosPorFila":3}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.Create, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"message"`, "domain rejections use the message envelope")
		})
	}
}

func TestSalaCreateIsAtomicWithSeatGrid(t *testing.T) {
	const body = `{"nombreSala":"Sala 9","cantidadAsientos":6,"cantidadFilas":2,"asientosPorFila":3}`

	t.Run("seat insert failure rolls back the room", func(t *testing.T) {
		db, stub := openStubDB(t, "INSERT INTO asientos")
		h := &SalaHandler{Salas: repository.NewSalaRepo(db), Asientos: repository.NewAsientoRepo(db), Audit: audit.Nop{}}

		rec := postJSON(t, h.Create, body)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, 0, stub.commits)
		assert.Equal(t, 1, stub.rollbacks)
		// The room insert ran inside the rolled-back transaction, so no
		// seatless room survives the failure.
		require.Len(t, stub.execs, 2)
		assert.Contains(t, stub.execs[0], "INSERT INTO salas")
	})

	t.Run("success commits room and grid together", func(t *testing.T) {
		db, stub := openStubDB(t, "")
		h := &SalaHandler{Salas: repository.NewSalaRepo(db), Asientos: repository.NewAsientoRepo(db), Audit: audit.Nop{}}

		rec := postJSON(t, h.Create, body)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, 1, stub.commits)
		assert.Equal(t, 0, stub.rollbacks)
		require.Len(t, stub.execs, 2)
		assert.Contains(t, stub.execs[0], "INSERT INTO salas")
		assert.Contains(t, stub.execs[1], "INSERT INTO asientos")
	})
}

func TestBuildGridCoversWholeLayout(t *testing.T) {
	sala := &model.Sala{ID: 3, CantidadAsientos: 6, CantidadFilas: 2, AsientosPorFila: 3}
	seats := buildGrid(sala)

	require.Len(t, seats, 6)
	assert.Equal(t, "A", seats[0].Fila)
	assert.Equal(t, uint32(1), seats[0].Numero)
	assert.Equal(t, "B", seats[5].Fila)
	assert.Equal(t, uint32(3), seats[5].Numero)
	for _, s := range seats {
		assert.Equal(t, "disponible", s.Estado)
		assert.Equal(t, sala.ID, s.SalaID)
	}
}

func TestIndexToRowLabel(t *testing.T) {
	assert.Equal(t, "A", indexToRowLabel(0))
	assert.Equal(t, "Z", indexToRowLabel(25))
	assert.Equal(t, "AA", indexToRowLabel(26))
	assert.Equal(t, "AZ", indexToRowLabel(51))
	assert.Equal(t, "", indexToRowLabel(-1))
}

func TestNormalizeRowLabel(t *testing.T) {
	assert.Equal(t, "B", normalizeRowLabel(" b "))
	assert.Equal(t, "AA", normalizeRowLabel("a-a"))
	assert.Equal(t, "", normalizeRowLabel("12"))
}
