package model

import "time"

// Vehicle is the vehicle profile a user enters at registration.
type Vehicle struct {
	Make           string `json:"make"`
	Model          string `json:"model"`
	Year           string `json:"year"`
	Type           string `json:"type"`
	FuelType       string `json:"fuelType"`
	CurrentMileage int    `json:"currentMileage"`
	Color          string `json:"color"`
}

// User represents a user record in the database. The email is stored
// lowercase and is unique. AssignedVehicleIndex points into the mock
// telemetry dataset and never changes after registration.
type User struct {
	ID                   int64
	FirstName            string
	LastName             string
	Email                string
	Phone                string
	DateOfBirth          time.Time
	PasswordHash         string
	SecurityQuestion     string
	SecurityAnswer       string
	Vehicle              Vehicle
	AssignedVehicleIndex int
	CreatedAt            time.Time
}

// RegisterRequest is the flat registration payload: identity fields plus
// the vehicle profile, matching the registration form.
type RegisterRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	DateOfBirth      string `json:"dateOfBirth"`
	Password         string `json:"password"`
	SecurityQuestion string `json:"securityQuestion"`
	SecurityAnswer   string `json:"securityAnswer"`
	VehicleMake      string `json:"vehicleMake"`
	VehicleModel     string `json:"vehicleModel"`
	VehicleYear      string `json:"vehicleYear"`
	VehicleType      string `json:"vehicleType"`
	FuelType         string `json:"fuelType"`
	CurrentMileage   int    `json:"currentMileage"`
	VehicleColor     string `json:"vehicleColor"`
}

// RegisterResponse is returned on successful registration. The token is
// short-lived and carries only the subject id.
type RegisterResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// LoginRequest is a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login with a full-claims token.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// UserResponse is the sanitized user view safe for API responses.
// The password hash and security answer are never included.
type UserResponse struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Vehicle   Vehicle `json:"vehicle"`
}

// AuthUser is the identity attached to the request context by the
// session middleware, re-read from the store on every request.
type AuthUser struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Vehicle   Vehicle
}

// SanitizedUser converts a stored user to its API-safe view.
func SanitizedUser(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Vehicle:   u.Vehicle,
	}
}
