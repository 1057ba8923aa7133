package identity

// AuthRequest carries credentials for both registration and login.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on a successful login.
type AuthResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	BestScore int    `json:"bestScore"`
	Archetype string `json:"archetype"`
	Token     string `json:"token"`
}
