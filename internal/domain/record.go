package domain

import "time"

// EventStateInstant is the event state tag attached to every AWS observation.
const EventStateInstant = "Instant"

// AWSRecord is one decoded weather-station observation, destined for the
// AWS_retrieved_db_data table. Identity fields come from the station registry;
// measurement fields are nil when the column is absent from the file or fails
// numeric coercion.
type AWSRecord struct {
	DeviceID     string
	StationID    string
	ServicesID   string
	UID          string
	EventStateID string
	Timestamp    time.Time

	PIR              *float64
	AvgPIR           *float64
	WindSpeed        *float64
	WindDirection    *float64
	Rain             *float64
	Temperature      *float64
	RelativeHumidity *float64
	Pressure         *float64
	BucketWeight     *float64
	Precipitation    *float64
}

// EWSRecord is one decoded gauge-station observation, destined for the
// EWS_retrieved_db_data table. EWS rows carry no usable timestamp of their
// own; Timestamp is the ingestion wall-clock time.
type EWSRecord struct {
	StationID string
	DeviceID  string
	UID       string
	Timestamp time.Time

	SurfaceVelocity     *float64
	AvgSurfaceVelocity  *float64
	WaterDistSensor     *float64
	WaterLevel          *float64
	WaterDischarge      *float64
	TiltAngle           *float64
	FlowDirection       *float64
	SNR                 *float64
	InternalTemperature *float64
	ChargeCurrent       *float64
	ObservedCurrent     *float64
	BatteryVoltage      *float64
	SolarPanelTracking  *float64
}

// Float returns a pointer to v. Convenience for building records and tests.
func Float(v float64) *float64 {
	return &v
}
