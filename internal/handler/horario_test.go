package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHorarioBodyValidate(t *testing.T) {
	ok := horarioBody{HoraProgramada: "18:30:00", FechaEmision: "2026-09-01", Turno: "vespertino"}
	assert.Empty(t, ok.validate())

	cases := []struct {
		name string
		body horarioBody
		want string
	}{
		{"bad hora", horarioBody{HoraProgramada: "6pm", FechaEmision: "2026-09-01", Turno: "matutino"}, "horaProgramada"},
		{"bad fecha", horarioBody{HoraProgramada: "10:00:00", FechaEmision: "01/09/2026", Turno: "matutino"}, "fechaDeEmision"},
		{"bad turno", horarioBody{HoraProgramada: "10:00:00", FechaEmision: "2026-09-01", Turno: "madrugada"}, "turno invalido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, tc.body.validate(), tc.want)
		})
	}
}
