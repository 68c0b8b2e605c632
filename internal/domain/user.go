package domain

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Credentials issued by the remote auth endpoint.
type Credentials struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (c Credentials) LoggedIn() bool { return c.Token != "" }

func (c Credentials) IsAdmin() bool { return c.Role == RoleAdmin }
