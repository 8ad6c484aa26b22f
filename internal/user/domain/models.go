package domain

import "time"

// User rows are created on first sync from the identity provider. The role
// is fixed at creation; later syncs only refresh contact fields.
type User struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	PhoneE164 string    `json:"phone_e164"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type SyncUserInput struct {
	FullName  string `json:"full_name"`
	PhoneE164 string `json:"phone_e164"`
	Email     string `json:"email"`
}

type Vehicle struct {
	ID           string    `json:"id"`
	DriverID     string    `json:"driver_id"`
	Plate        string    `json:"plate"`
	Model        string    `json:"model"`
	SeatCapacity int       `json:"seat_capacity"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterVehicleInput struct {
	Plate        string `json:"plate"`
	Model        string `json:"model"`
	SeatCapacity int    `json:"seat_capacity"`
}
