package user

import "fmt"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           string
	Email        string
	FullName     string
	Role         string
	PasswordHash string
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p Principal) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("principal user id is required")
	}

	return nil
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
