package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/autocare360/autocare-go/internal/crypto"
	"github.com/autocare360/autocare-go/internal/model"
	"github.com/autocare360/autocare-go/internal/repository"
	"github.com/autocare360/autocare-go/internal/telemetry"
)

var (
	ErrMissingCredentials = errors.New("Email and password are required")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrEmailTaken         = errors.New("Email already registered")
)

// ValidationError reports a registration field that failed the
// pre-persistence validation pass.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func fieldRequired(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

// UserStore is the persistence surface the auth flow needs. It is
// satisfied by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// AuthService handles registration and login.
type AuthService struct {
	store     UserStore
	dataset   *telemetry.Dataset
	jwtSecret string

	registerExpiry time.Duration
	loginExpiry    time.Duration
}

// NewAuthService creates a new AuthService. The dataset handle is used
// only to bound the random vehicle assignment.
func NewAuthService(store UserStore, dataset *telemetry.Dataset, secret string, registerExpiry, loginExpiry time.Duration) *AuthService {
	return &AuthService{
		store:          store,
		dataset:        dataset,
		jwtSecret:      secret,
		registerExpiry: registerExpiry,
		loginExpiry:    loginExpiry,
	}
}

// Register validates the payload, creates the user with a randomly
// assigned mock vehicle, and returns a short-lived subject-only token.
// The password is hashed before the insert and never echoed back.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResponse, error) {
	dob, err := validateRegisterRequest(req)
	if err != nil {
		return model.RegisterResponse{}, err
	}

	email := normalizeEmail(req.Email)

	// Courtesy pre-check before the expensive hash. The unique index on
	// email still decides concurrent registrations; Create maps that
	// race to the same error.
	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return model.RegisterResponse{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.RegisterResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.RegisterResponse{}, err
	}

	user := &model.User{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            email,
		Phone:            req.Phone,
		DateOfBirth:      dob,
		PasswordHash:     hash,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
		Vehicle: model.Vehicle{
			Make:           req.VehicleMake,
			Model:          req.VehicleModel,
			Year:           req.VehicleYear,
			Type:           req.VehicleType,
			FuelType:       req.FuelType,
			CurrentMileage: req.CurrentMileage,
			Color:          req.VehicleColor,
		},
		AssignedVehicleIndex: rand.IntN(s.dataset.Len()),
	}

	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.RegisterResponse{}, ErrEmailTaken
		}
		return model.RegisterResponse{}, err
	}

	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.registerExpiry)
	if err != nil {
		return model.RegisterResponse{}, err
	}

	return model.RegisterResponse{
		Message: "User registered successfully",
		Token:   token,
	}, nil
}

// Login authenticates a user and returns a full-identity token. Unknown
// email and wrong password produce the identical error so responses do
// not leak account existence.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return model.LoginResponse{}, ErrMissingCredentials
	}

	user, err := s.store.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.LoginResponse{}, ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateIdentityToken(crypto.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, s.jwtSecret, s.loginExpiry)
	if err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    model.SanitizedUser(user),
	}, nil
}

// validateRegisterRequest runs the pre-persistence validation pass and
// parses the date of birth. Nothing is hashed or written before this
// pass succeeds.
func validateRegisterRequest(req model.RegisterRequest) (time.Time, error) {
	required := []struct {
		field string
		value string
	}{
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"email", req.Email},
		{"phone", req.Phone},
		{"dateOfBirth", req.DateOfBirth},
		{"password", req.Password},
		{"securityQuestion", req.SecurityQuestion},
		{"securityAnswer", req.SecurityAnswer},
		{"vehicleMake", req.VehicleMake},
		{"vehicleModel", req.VehicleModel},
		{"vehicleYear", req.VehicleYear},
		{"vehicleType", req.VehicleType},
		{"fuelType", req.FuelType},
		{"vehicleColor", req.VehicleColor},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return time.Time{}, fieldRequired(f.field)
		}
	}

	if req.CurrentMileage < 0 {
		return time.Time{}, &ValidationError{Field: "currentMileage", Reason: "must not be negative"}
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "dateOfBirth", Reason: "must be a valid date (YYYY-MM-DD)"}
	}

	return dob, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
