package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/autocare360/autocare-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

const userColumns = `id, first_name, last_name, email, phone, date_of_birth,
	password_hash, security_question, security_answer,
	vehicle_make, vehicle_model, vehicle_year, vehicle_type,
	vehicle_fuel_type, vehicle_mileage, vehicle_color,
	assigned_vehicle_index, created_at`

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user
// struct. The unique index on email is the source of truth for
// duplicate registrations; a concurrent insert losing the race surfaces
// here as ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (first_name, last_name, email, phone, date_of_birth,
		password_hash, security_question, security_answer,
		vehicle_make, vehicle_model, vehicle_year, vehicle_type,
		vehicle_fuel_type, vehicle_mileage, vehicle_color,
		assigned_vehicle_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.Phone, user.DateOfBirth,
		user.PasswordHash, user.SecurityQuestion, user.SecurityAnswer,
		user.Vehicle.Make, user.Vehicle.Model, user.Vehicle.Year, user.Vehicle.Type,
		user.Vehicle.FuelType, user.Vehicle.CurrentMileage, user.Vehicle.Color,
		user.AssignedVehicleIndex,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByEmail retrieves a user by their email address. Callers are
// expected to pass a lowercase-normalized email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Phone,
		&user.DateOfBirth, &user.PasswordHash, &user.SecurityQuestion,
		&user.SecurityAnswer,
		&user.Vehicle.Make, &user.Vehicle.Model, &user.Vehicle.Year,
		&user.Vehicle.Type, &user.Vehicle.FuelType, &user.Vehicle.CurrentMileage,
		&user.Vehicle.Color,
		&user.AssignedVehicleIndex, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
