package domain

import "github.com/Skotchmaster/ecommerce_hub/services/auth/internal/models"

const DemoPassword = "Password123!"

type DemoUser struct {
	FullName string
	Email    string
	Role     string
}

// DemoUsers are the accounts a fresh database starts with. All of them use
// DemoPassword.
func DemoUsers() []DemoUser {
	return []DemoUser{
		{FullName: "María López", Email: "maria.lopez@example.com", Role: models.RoleAdmin},
		{FullName: "Carlos Pérez", Email: "carlos.perez@example.com", Role: models.RoleUser},
	}
}
