package entity

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Valores por defecto al crear usuarios (y para el admin sembrado).
const (
	DefaultTeam     = "HQ"
	DefaultZone     = "BKK"
	DefaultPassword = "123456"
)

// User representa un usuario del sistema. En el documento se guarda como Record
// para no perder campos que otras versiones hayan agregado.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         string // admin, staff
	Team         string
	Zone         string
	PasswordHash string // bcrypt hash
	CreatedAt    string
}

// UserFromRecord construye la vista tipada de un usuario.
func UserFromRecord(r Record) *User {
	if r == nil {
		return nil
	}
	return &User{
		ID:           r.ID(),
		Email:        r.String("email"),
		Name:         r.String("name"),
		Role:         r.String("role"),
		Team:         r.String(FieldTeam),
		Zone:         r.String(FieldZone),
		PasswordHash: r.String("password_hash"),
		CreatedAt:    r.String(FieldCreatedAt),
	}
}

// Record devuelve el usuario en su forma persistida.
func (u *User) Record() Record {
	return Record{
		FieldID:         u.ID,
		"email":         u.Email,
		"name":          u.Name,
		"role":          u.Role,
		FieldTeam:       u.Team,
		FieldZone:       u.Zone,
		"password_hash": u.PasswordHash,
		FieldCreatedAt:  u.CreatedAt,
	}
}

// IsAdmin indica si el usuario tiene rol admin.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
