package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinelatam/taquilla-api/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBUser: "taquilla",
		DBPass: "secreto",
		DBHost: "localhost",
		DBPort: "3306",
		DBName: "cine",
	}
	got := dsn(cfg)

	assert.Equal(t, "taquilla:secreto@tcp(localhost:3306)/cine?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true", got)

	// Matched-rows reporting keeps idempotent updates from reading as
	// missing rows when nothing changed.
	assert.Contains(t, got, "clientFoundRows=true")

	cfg.DBPass = ""
	assert.Equal(t, "taquilla@tcp(localhost:3306)/cine?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true", dsn(cfg))
}
