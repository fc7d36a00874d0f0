package domain

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

type Credential struct {
	Username     string
	Password     string
	PasswordHash string
	DisplayName  string
	Role         Role
}

type Identity struct {
	Username    string
	DisplayName string
	Role        Role
}

func (c Credential) Identity() Identity {
	return Identity{
		Username:    c.Username,
		DisplayName: c.DisplayName,
		Role:        c.Role,
	}
}
