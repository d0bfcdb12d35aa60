package model

// Clasificaciones reconocidas para películas (sistema mexicano de
// clasificación). Any other value is rejected before persistence.
var Clasificaciones = map[string]bool{
	"A":   true,
	"B":   true,
	"B15": true,
	"C":   true,
	"D":   true,
}

// Turnos for showtimes. A showtime always belongs to exactly one shift.
const (
	TurnoMatutino   = "matutino"
	TurnoVespertino = "vespertino"
	TurnoNocturno   = "nocturno"
)

// ValidTurno reports whether s is a recognized shift label.
func ValidTurno(s string) bool {
	return s == TurnoMatutino || s == TurnoVespertino || s == TurnoNocturno
}

// Pelicula is a movie in the catalog. Its Precio feeds the reservation
// engine; Imagen is an opaque poster reference (URL or encoded blob) that
// is stored but never parsed.
//
// Fields:
//
//	ID            – primary key identifier.
//	Nombre        – movie title.
//	Director      – director name.
//	Duracion      – running time in minutes, positive.
//	Actores       – cast, free text.
//	Clasificacion – classification code (A, B, B15, C, D).
//	Descripcion   – synopsis.
//	Precio        – ticket price in whole currency units, positive.
//	Imagen        – optional poster reference.
//	HorarioID     – owning showtime.
type Pelicula struct {
	ID            uint64  `json:"idPelicula"`               // peliculas.id_pelicula
	Nombre        string  `json:"nombrePelicula"`           // peliculas.nombre_pelicula
	Director      string  `json:"directorPelicula"`         // peliculas.director_pelicula
	Duracion      uint32  `json:"duracionPelicula"`         // peliculas.duracion_pelicula
	Actores       string  `json:"actoresPelicula"`          // peliculas.actores_pelicula
	Clasificacion string  `json:"clasificacionPelicula"`    // peliculas.clasificacion_pelicula
	Descripcion   string  `json:"descripcionPelicula"`      // peliculas.descripcion_pelicula
	Precio        uint32  `json:"precioBoleto"`             // peliculas.precio_boleto
	Imagen        *string `json:"imagenPelicula,omitempty"` // peliculas.imagen_pelicula (nullable)
	HorarioID     uint64  `json:"idHorario"`                // peliculas.id_horario
}

// Horario is a scheduled time-of-day at which movies play.
//
// Fields:
//
//	ID            – primary key identifier.
//	HoraProgramada – time of day, "HH:MM:SS".
//	FechaEmision  – issue date, "YYYY-MM-DD".
//	Turno         – shift label (matutino, vespertino, nocturno).
type Horario struct {
	ID             uint64 `json:"idHorario"`      // horarios.id_horario
	HoraProgramada string `json:"horaProgramada"` // horarios.hora_programada
	FechaEmision   string `json:"fechaDeEmision"` // horarios.fecha_emision
	Turno          string `json:"turno"`          // horarios.turno
}

// Cartelera associates a movie, showtime and room with a named day of the
// week. It exists only for catalog browsing and carries no reservation
// state.
type Cartelera struct {
	ID         uint64 `json:"idCartelera"` // cartelera.id_cartelera
	PeliculaID uint64 `json:"idPelicula"`  // cartelera.id_pelicula
	HorarioID  uint64 `json:"idHorario"`   // cartelera.id_horario
	SalaID     uint64 `json:"idSala"`      // cartelera.id_sala
	DiaSemana  string `json:"diaSemana"`   // cartelera.dia_semana
}
