package model

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

type User struct {
	Username     string
	PasswordHash string
	Email        string
	Phone        string
	Address      string
	Role         Role
}
