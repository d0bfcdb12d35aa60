// Package queue defines message payloads exchanged over the message
// broker and the background consumer that mirrors them into a local log.
package queue

// TicketIssuedEvent is published after a reservation commits. It carries
// enough context for downstream consumers to log or notify without
// querying the primary database.
type TicketIssuedEvent struct {
	PagoID    uint64   `json:"id_compra"`
	Folio     string   `json:"folio"`
	UsuarioID uint64   `json:"id_usuario"`
	Pelicula  string   `json:"pelicula"`
	Sala      string   `json:"sala"`
	Funcion   string   `json:"funcion"`
	Hora      string   `json:"hora"`
	Turno     string   `json:"turno"`
	Asientos  []string `json:"asientos"`
	Total     uint32   `json:"total"`
	EmitidoEn string   `json:"emitido_en"`
}

// TicketCancelledEvent is published when a ticket is cancelled or a
// payment refunded.
type TicketCancelledEvent struct {
	BoletoID    uint64 `json:"id_boleto"`
	PagoID      uint64 `json:"id_compra"`
	AsientoID   uint64 `json:"id_asiento"`
	Motivo      string `json:"motivo"` // "cancelacion" or "reembolso"
	CanceladoEn string `json:"cancelado_en"`
}
