package identity

// Roles embedded in signed tokens. There is no finer-grained permission
// model; admin unlocks the dashboard endpoints, user does not.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a dashboard account.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	PasswordHash []byte `json:"-"`
}
