package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	ErrEmptyDataset    = errors.New("telemetry dataset is empty")
	ErrIndexOutOfRange = errors.New("vehicle index out of range")
)

// Record is a single mock telemetry snapshot. Records are loaded once at
// process start and are never mutated.
type Record struct {
	VehicleID       string   `json:"vehicleId"`
	Make            string   `json:"make"`
	Model           string   `json:"model"`
	Year            int      `json:"year"`
	Mileage         int      `json:"mileage"`
	EngineStatus    string   `json:"engineStatus"`
	BatteryHealth   int      `json:"batteryHealth"`
	BatteryVoltage  float64  `json:"batteryVoltage"`
	BrakePadWear    int      `json:"brakePadWear"`
	OilLife         int      `json:"oilLife"`
	CoolantLevel    string   `json:"coolantLevel"`
	TireCondition   string   `json:"tireCondition"`
	LastService     string   `json:"lastService"`
	NextMaintenance string   `json:"nextMaintenance"`
	CriticalAlerts  []string `json:"criticalAlerts"`
	UpcomingTasks   []string `json:"upcomingTasks"`
}

// Dataset is a read-only handle over the mock vehicle records. It is
// constructed once at startup and injected into the services that need
// it; its length is fixed for the process lifetime.
type Dataset struct {
	records []Record
}

// New builds a dataset from the given records.
func New(records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	return &Dataset{records: records}, nil
}

// Load reads the mock dataset from a JSON file on disk.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	return New(records)
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Get returns the record at the given index.
func (d *Dataset) Get(i int) (Record, error) {
	if i < 0 || i >= len(d.records) {
		return Record{}, ErrIndexOutOfRange
	}
	return d.records[i], nil
}
