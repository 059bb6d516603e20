package domain

const (
	RoleCliente = "cliente"
	RoleAdmin   = "admin"
)

type Usuario struct {
	ID        string `db:"id" json:"id"`
	Nombre    string `db:"nombre" json:"nombre"`
	Apellidos string `db:"apellidos" json:"apellidos"`
	Email     string `db:"email" json:"email"`
	Celular   string `db:"celular" json:"celular"`
	DNI       string `db:"dni" json:"dni"`
	Hash      string `db:"password_hash" json:"-"`
	Role      string `db:"role" json:"role"`
}

func (u Usuario) EsAdmin() bool   { return u.Role == RoleAdmin }
func (u Usuario) EsCliente() bool { return u.Role == RoleCliente }
