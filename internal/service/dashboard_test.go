package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autocare360/autocare-go/internal/model"
	"github.com/autocare360/autocare-go/internal/testutil"
)

func newTestDashboard(t *testing.T) (*DashboardService, *testutil.MemoryUserStore) {
	t.Helper()
	store := testutil.NewMemoryUserStore()
	return NewDashboardService(store, testutil.Dataset(t)), store
}

func seedUser(t *testing.T, store *testutil.MemoryUserStore, index int) *model.User {
	t.Helper()
	user := &model.User{
		FirstName:            "Ava",
		LastName:             "Nguyen",
		Email:                "ava@example.com",
		Phone:                "+1-555-0142",
		DateOfBirth:          time.Date(1992, 7, 14, 0, 0, 0, 0, time.UTC),
		PasswordHash:         "$2a$10$notarealhashnotarealhashnotarealhashnotarealha",
		SecurityQuestion:     "First pet's name?",
		SecurityAnswer:       "Biscuit",
		Vehicle:              model.Vehicle{Make: "Toyota", Model: "Camry", Year: "2021", Type: "Sedan", FuelType: "Petrol", CurrentMileage: 72458, Color: "Silver"},
		AssignedVehicleIndex: index,
	}
	if err := store.Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func TestOverview(t *testing.T) {
	svc, store := newTestDashboard(t)
	user := seedUser(t, store, 0)

	before := time.Now().UTC()
	resp, err := svc.Overview(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Overview() unexpected error: %v", err)
	}

	if resp.User.Email != "ava@example.com" {
		t.Errorf("User.Email = %q, want %q", resp.User.Email, "ava@example.com")
	}
	if resp.VehicleData.VehicleID != "VH-9001" {
		t.Errorf("VehicleData.VehicleID = %q, want %q", resp.VehicleData.VehicleID, "VH-9001")
	}
	if resp.Summary.EngineStatus != "Optimal" {
		t.Errorf("Summary.EngineStatus = %q, want %q", resp.Summary.EngineStatus, "Optimal")
	}
	if resp.Summary.Mileage != 72458 {
		t.Errorf("Summary.Mileage = %d, want 72458", resp.Summary.Mileage)
	}
	if resp.Summary.BatteryHealth != 78 {
		t.Errorf("Summary.BatteryHealth = %d, want 78", resp.Summary.BatteryHealth)
	}
	if resp.Summary.CriticalAlertCount != 1 {
		t.Errorf("Summary.CriticalAlertCount = %d, want 1", resp.Summary.CriticalAlertCount)
	}
	if resp.Summary.UpcomingTaskCount != 2 {
		t.Errorf("Summary.UpcomingTaskCount = %d, want 2", resp.Summary.UpcomingTaskCount)
	}
	if resp.Summary.LastLogin.Before(before) {
		t.Errorf("Summary.LastLogin = %v, expected wall clock at request time", resp.Summary.LastLogin)
	}
}

func TestOverview_Idempotent(t *testing.T) {
	svc, store := newTestDashboard(t)
	user := seedUser(t, store, 1)

	first, err := svc.Overview(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Overview() unexpected error: %v", err)
	}
	second, err := svc.Overview(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Overview() unexpected error: %v", err)
	}

	if first.VehicleData.VehicleID != second.VehicleData.VehicleID {
		t.Errorf("repeated calls returned different records: %q vs %q",
			first.VehicleData.VehicleID, second.VehicleData.VehicleID)
	}
}

func TestOverview_UserMissing(t *testing.T) {
	svc, _ := newTestDashboard(t)

	_, err := svc.Overview(context.Background(), 999)
	if !errors.Is(err, ErrVehicleNotFound) {
		t.Errorf("Overview() error = %v, want ErrVehicleNotFound", err)
	}
}

func TestOverview_IndexOutOfRange(t *testing.T) {
	svc, store := newTestDashboard(t)
	user := seedUser(t, store, 42)

	_, err := svc.Overview(context.Background(), user.ID)
	if !errors.Is(err, ErrVehicleNotFound) {
		t.Errorf("Overview() error = %v, want ErrVehicleNotFound for stale index", err)
	}
}

func TestVehicle(t *testing.T) {
	svc, store := newTestDashboard(t)
	user := seedUser(t, store, 1)

	record, err := svc.Vehicle(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Vehicle() unexpected error: %v", err)
	}
	if record.VehicleID != "VH-9002" {
		t.Errorf("VehicleID = %q, want %q", record.VehicleID, "VH-9002")
	}
}

func TestProfile(t *testing.T) {
	svc, store := newTestDashboard(t)
	user := seedUser(t, store, 0)

	profile, err := svc.Profile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Profile() unexpected error: %v", err)
	}
	if profile.Email != "ava@example.com" {
		t.Errorf("Email = %q, want %q", profile.Email, "ava@example.com")
	}
	if profile.Vehicle.Make != "Toyota" {
		t.Errorf("Vehicle.Make = %q, want %q", profile.Vehicle.Make, "Toyota")
	}
}

func TestProfile_UserMissing(t *testing.T) {
	svc, _ := newTestDashboard(t)

	_, err := svc.Profile(context.Background(), 999)
	if !errors.Is(err, ErrVehicleNotFound) {
		t.Errorf("Profile() error = %v, want ErrVehicleNotFound", err)
	}
}
