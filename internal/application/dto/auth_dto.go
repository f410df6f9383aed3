package dto

// EmployeeLoginRequest login del personal.
type EmployeeLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ClientLoginRequest login del cliente con teléfono + PIN.
type ClientLoginRequest struct {
	Phone string `json:"phone"`
	PIN   string `json:"pin"`
}

// LoginResponse token y datos básicos del actor.
type LoginResponse struct {
	Token     string `json:"token"`
	ActorID   string `json:"actor_id"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
