package dto

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// Los campos vacíos toman los valores por defecto: role staff, team HQ, zone BKK, password 123456.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Team     string `json:"team"`
	Zone     string `json:"zone"`
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Team      string `json:"team"`
	Zone      string `json:"zone"`
	CreatedAt string `json:"created_at,omitempty"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser datos públicos del usuario en la respuesta de login.
type LoginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	OK    bool      `json:"ok"`
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// MeResponse perfil del usuario de la sesión; User es null si el usuario ya no existe.
type MeResponse struct {
	OK   bool          `json:"ok"`
	User *UserResponse `json:"user"`
}

// ChangePasswordRequest entrada para cambiar la contraseña propia.
type ChangePasswordRequest struct {
	Current string `json:"current"`
	Next    string `json:"next"`
}
