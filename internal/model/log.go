package model

import "time"

// LogEntry is an append-only audit record. The core only ever writes these;
// reading them back is an admin-only query endpoint.
//
// Fields:
//
//	ID               – primary key identifier.
//	Usuario          – actor (user id or "anonimo").
//	Accion           – action attempted, including failure reasons.
//	FechaHora        – when it happened.
//	Host             – Host header of the request.
//	Navegador        – client user agent.
//	SistemaOperativo – OS hint parsed from the user agent.
//	TipoDispositivo  – device type hint.
//	DireccionIP      – client address.
type LogEntry struct {
	ID               uint64    `json:"idLog"`            // logs.id_log
	Usuario          string    `json:"usuario"`          // logs.usuario
	Accion           string    `json:"accion"`           // logs.accion
	FechaHora        time.Time `json:"fechaHora"`        // logs.fecha_hora
	Host             string    `json:"host"`             // logs.host
	Navegador        string    `json:"navegador"`        // logs.navegador
	SistemaOperativo string    `json:"sistemaOperativo"` // logs.sistema_operativo
	TipoDispositivo  string    `json:"tipoDispositivo"`  // logs.tipo_dispositivo
	DireccionIP      string    `json:"direccionIP"`      // logs.direccion_ip
}
