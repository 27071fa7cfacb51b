package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
