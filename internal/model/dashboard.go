package model

import (
	"time"

	"github.com/autocare360/autocare-go/internal/telemetry"
)

// DashboardSummary is the derived view rendered at the top of the
// dashboard. LastLogin is the wall clock at request time; it is not
// persisted anywhere.
type DashboardSummary struct {
	LastLogin          time.Time `json:"lastLogin"`
	EngineStatus       string    `json:"engineStatus"`
	NextMaintenance    string    `json:"nextMaintenance"`
	Mileage            int       `json:"mileage"`
	BatteryHealth      int       `json:"batteryHealth"`
	CriticalAlertCount int       `json:"criticalAlertCount"`
	UpcomingTaskCount  int       `json:"upcomingTaskCount"`
}

// DashboardResponse composes the profile, the assigned telemetry record
// and the derived summary.
type DashboardResponse struct {
	User        UserResponse     `json:"user"`
	VehicleData telemetry.Record `json:"vehicleData"`
	Summary     DashboardSummary `json:"summary"`
}
