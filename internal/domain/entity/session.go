package entity

// Session identidad autenticada derivada únicamente del token. No se relee del documento
// al autorizar: un cambio de rol o equipo aplica cuando el usuario vuelve a iniciar sesión.
type Session struct {
	UserID string
	Role   string
	Team   string
	Zone   string
	Name   string
	Email  string
}

// IsAdmin indica si la sesión tiene rol admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// SessionFromUser arma la sesión que se firma en el token.
func SessionFromUser(u *User) Session {
	return Session{
		UserID: u.ID,
		Role:   u.Role,
		Team:   u.Team,
		Zone:   u.Zone,
		Name:   u.Name,
		Email:  u.Email,
	}
}
