package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterValidation(t *testing.T) {
	h := &AuthHandler{}

	cases := []struct {
		name string
		body string
		want string
	}{
		{
			"missing fields",
			`{"nombreUsuario":"Ana"}`,
			"obligatorios",
		},
		{
			"bad email",
			`{"nombreUsuario":"Ana","correoUsuario":"no-arroba","contrasena":"12345678"}`,
			"correo invalido",
		},
		{
			"short password",
			`{"nombreUsuario":"Ana","correoUsuario":"ana@cine.mx","contrasena":"corta"}`,
			"al menos 8 caracteres",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.Register, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestContactoValidation(t *testing.T) {
	h := &ContactoHandler{}

	rec := postJSON(t, h.Create, `{"name":"","email":"x@y.z","message":"hola"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Create, `{"name":"Ana","email":"sin-arroba","message":"hola"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email invalido")
}
