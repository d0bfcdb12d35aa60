package model

// Roles de usuario. The system must always retain at least one admin
// account; deleting or downgrading the last admin is rejected.
const (
	RolCliente = "cliente"
	RolAdmin   = "admin"
	RolOtro    = "otro"
)

// ValidRol reports whether r is a known role.
func ValidRol(r string) bool {
	return r == RolCliente || r == RolAdmin || r == RolOtro
}

// Usuario is an account holder. Contrasena stores the bcrypt hash, never
// the plain password, and is stripped from JSON responses.
//
// Fields:
//
//	ID        – primary key identifier.
//	Nombre    – given name.
//	Apellido  – surname.
//	Edad      – age in years.
//	Correo    – unique email, stored lowercase.
//	Telefono  – contact phone.
//	Contrasena – bcrypt password hash.
//	Rol       – cliente (default), admin or otro.
type Usuario struct {
	ID         uint64 `json:"idUsuario"`       // usuarios.id_usuario
	Nombre     string `json:"nombreUsuario"`   // usuarios.nombre_usuario
	Apellido   string `json:"apellidoUsuario"` // usuarios.apellido_usuario
	Edad       uint32 `json:"edadUsuario"`     // usuarios.edad_usuario
	Correo     string `json:"correoUsuario"`   // usuarios.correo_usuario
	Telefono   string `json:"telefonoUsuario"` // usuarios.telefono_usuario
	Contrasena string `json:"-"`               // usuarios.contrasena_usuario
	Rol        string `json:"tipoUsuario"`     // usuarios.tipo_usuario
}
