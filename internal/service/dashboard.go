package service

import (
	"context"
	"errors"
	"time"

	"github.com/autocare360/autocare-go/internal/model"
	"github.com/autocare360/autocare-go/internal/repository"
	"github.com/autocare360/autocare-go/internal/telemetry"
)

var ErrVehicleNotFound = errors.New("User or assigned vehicle not found")

// DashboardService composes dashboard views from the user record and
// the read-only telemetry dataset. Every call re-reads the store; no
// view is cached.
type DashboardService struct {
	store   UserStore
	dataset *telemetry.Dataset
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(store UserStore, dataset *telemetry.Dataset) *DashboardService {
	return &DashboardService{store: store, dataset: dataset}
}

// Overview returns the composed dashboard view: profile subset, the
// full assigned telemetry record, and the derived summary.
func (s *DashboardService) Overview(ctx context.Context, userID int64) (model.DashboardResponse, error) {
	user, record, err := s.lookup(ctx, userID)
	if err != nil {
		return model.DashboardResponse{}, err
	}

	return model.DashboardResponse{
		User:        model.SanitizedUser(user),
		VehicleData: record,
		Summary: model.DashboardSummary{
			LastLogin:          time.Now().UTC(),
			EngineStatus:       record.EngineStatus,
			NextMaintenance:    record.NextMaintenance,
			Mileage:            record.Mileage,
			BatteryHealth:      record.BatteryHealth,
			CriticalAlertCount: len(record.CriticalAlerts),
			UpcomingTaskCount:  len(record.UpcomingTasks),
		},
	}, nil
}

// Vehicle returns the raw telemetry record assigned to the user.
func (s *DashboardService) Vehicle(ctx context.Context, userID int64) (telemetry.Record, error) {
	_, record, err := s.lookup(ctx, userID)
	return record, err
}

// Profile returns the sanitized user profile only.
func (s *DashboardService) Profile(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrVehicleNotFound
		}
		return model.UserResponse{}, err
	}

	return model.SanitizedUser(user), nil
}

func (s *DashboardService) lookup(ctx context.Context, userID int64) (*model.User, telemetry.Record, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, telemetry.Record{}, ErrVehicleNotFound
		}
		return nil, telemetry.Record{}, err
	}

	record, err := s.dataset.Get(user.AssignedVehicleIndex)
	if err != nil {
		return nil, telemetry.Record{}, ErrVehicleNotFound
	}

	return user, record, nil
}
