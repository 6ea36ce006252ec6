package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/autocare360/autocare-go/internal/model"
	"github.com/autocare360/autocare-go/internal/repository"
	"github.com/autocare360/autocare-go/internal/telemetry"
)

// MemoryUserStore is an in-memory credential store for tests. It
// mirrors the repository sentinel errors so service and middleware code
// paths behave as they do against MySQL.
type MemoryUserStore struct {
	mu      sync.Mutex
	users   map[int64]*model.User
	byEmail map[string]int64
	nextID  int64
}

// NewMemoryUserStore creates an empty in-memory store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:   make(map[int64]*model.User),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

// Create inserts a user, enforcing the unique-email constraint.
func (s *MemoryUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}

	user.ID = s.nextID
	s.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	stored := *user
	s.users[user.ID] = &stored
	s.byEmail[user.Email] = user.ID
	return nil
}

// GetByEmail retrieves a user by exact email match.
func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u := *s.users[id]
	return &u, nil
}

// GetByID retrieves a user by ID.
func (s *MemoryUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// Delete removes a user, simulating account deletion between token
// issuance and use.
func (s *MemoryUserStore) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[id]; ok {
		delete(s.byEmail, u.Email)
		delete(s.users, id)
	}
}

// Count returns the number of stored users.
func (s *MemoryUserStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// Dataset builds a small fixed telemetry dataset for tests.
func Dataset(t *testing.T) *telemetry.Dataset {
	t.Helper()

	d, err := telemetry.New([]telemetry.Record{
		{
			VehicleID:       "VH-9001",
			Make:            "Toyota",
			Model:           "Camry",
			Year:            2021,
			Mileage:         72458,
			EngineStatus:    "Optimal",
			BatteryHealth:   78,
			BatteryVoltage:  12.4,
			BrakePadWear:    25,
			OilLife:         60,
			CoolantLevel:    "Good",
			TireCondition:   "Good",
			LastService:     "45 days ago",
			NextMaintenance: "Oil change in 1,500 miles",
			CriticalAlerts:  []string{"Brake pads worn below 30%"},
			UpcomingTasks:   []string{"Oil change", "Tire rotation"},
		},
		{
			VehicleID:       "VH-9002",
			Make:            "Honda",
			Model:           "Civic",
			Year:            2019,
			Mileage:         48230,
			EngineStatus:    "Optimal",
			BatteryHealth:   91,
			BatteryVoltage:  12.7,
			BrakePadWear:    62,
			OilLife:         85,
			CoolantLevel:    "Good",
			TireCondition:   "Excellent",
			LastService:     "12 days ago",
			NextMaintenance: "Cabin filter in 4,000 miles",
			CriticalAlerts:  []string{},
			UpcomingTasks:   []string{"Cabin air filter replacement"},
		},
	})
	if err != nil {
		t.Fatalf("building test dataset: %v", err)
	}
	return d
}

// RegisterRequest returns a complete, valid registration payload.
func RegisterRequest() model.RegisterRequest {
	return model.RegisterRequest{
		FirstName:        "Ava",
		LastName:         "Nguyen",
		Email:            "ava@example.com",
		Phone:            "+1-555-0142",
		DateOfBirth:      "1992-07-14",
		Password:         "pw123456",
		SecurityQuestion: "First pet's name?",
		SecurityAnswer:   "Biscuit",
		VehicleMake:      "Toyota",
		VehicleModel:     "Camry",
		VehicleYear:      "2021",
		VehicleType:      "Sedan",
		FuelType:         "Petrol",
		CurrentMileage:   72458,
		VehicleColor:     "Silver",
	}
}
