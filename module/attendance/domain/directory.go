package domain

import "time"

type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleEmployee
}

func (r Role) IsAdmin() bool {
	return r == RoleOwner || r == RoleAdmin
}

type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Establishment struct {
	ID           string     `json:"id"`
	CompanyID    string     `json:"company_id"`
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	Coordinate   Coordinate `json:"coordinate"`
	RadiusMeters float64    `json:"radius_meters"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Employee struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"company_id"`
	EstablishmentID string    `json:"establishment_id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	Role            Role      `json:"role"`
	PasswordHash    string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
