// Package station holds the registry of monitored stations. Decoding layouts
// (header candidate lists, triplet indexes, fixed column positions) live here
// as data, so supporting a new logger firmware revision is a registry change,
// not a new parser code path.
package station

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hydro-telemetry/internal/domain"
)

// Family selects the decoding strategy for a station's CSV files.
type Family string

const (
	// FamilyAWS is the header-driven weather-station format: a "Date Time"
	// header row followed by data rows, of which only the last is decoded.
	FamilyAWS Family = "aws"
	// FamilyEWSTriplet is the headerless gauge format encoding parameters as
	// "<index> <flag> <value>" token triplets, with auxiliary fields at fixed
	// absolute offsets. Every row is decoded.
	FamilyEWSTriplet Family = "ews-triplet"
	// FamilyEWSColumn is the headerless gauge format with one parameter per
	// fixed column position. Every row is decoded.
	FamilyEWSColumn Family = "ews-column"
)

// Config describes one station: identity tags, where its logger drops files,
// how to decode them, and which cache parameters are seeded from history.
type Config struct {
	Name       string `yaml:"name"`
	Family     Family `yaml:"family"`
	Folder     string `yaml:"folder"`
	DeviceID   string `yaml:"device_id"`
	StationID  string `yaml:"station_id"`
	ServicesID string `yaml:"services_id,omitempty"`
	UID        string `yaml:"uid"`

	AWS     *AWSLayout     `yaml:"aws,omitempty"`
	Triplet *TripletLayout `yaml:"triplet,omitempty"`
	Columns *ColumnLayout  `yaml:"columns,omitempty"`

	// SeedParams are the cache parameters seeded at startup with the most
	// recent non-null, non-zero historical value for this station.
	SeedParams []string `yaml:"seed_params,omitempty"`
}

// AWSLayout maps output parameters to header candidate names. Candidates are
// matched as case-insensitive substrings against the file's header row, in
// order; a candidate that resolves to a zero or missing value falls through
// to the next one.
type AWSLayout struct {
	Fields map[string][]string `yaml:"fields"`
}

// TripletLayout describes the index/flag/value gauge encoding.
type TripletLayout struct {
	// Flag is the sentinel marking a valid index/value pair ("B").
	Flag string `yaml:"flag"`
	// SurfaceVelocityCol is the absolute column of the surface velocity
	// reading, outside the triplet scheme.
	SurfaceVelocityCol int `yaml:"surface_velocity_col"`
	// Pairs maps output parameters to triplet indexes.
	Pairs map[string]int `yaml:"pairs"`
	// Aux maps output parameters to absolute column positions.
	Aux map[string]int `yaml:"aux"`
	// Substituted lists pair parameters whose zero or absent values are
	// replaced by the cached last-known-good value. All other pair parameters
	// pass through exactly as the CSV gives them; in particular discharge is
	// raw because a zero discharge is a real reading on this hardware.
	Substituted []string `yaml:"substituted,omitempty"`
}

// ColumnLayout describes the fixed-column gauge encoding.
type ColumnLayout struct {
	// Cached maps parameters to columns under the full substitution policy:
	// a fresh non-zero value is emitted and cached, anything else emits the
	// previous cached value.
	Cached map[string]int `yaml:"cached"`
	// Raw maps parameters to columns read as-is (nil on coercion failure).
	Raw map[string]int `yaml:"raw"`
	// FlowDirection is emitted as a constant; this hardware has no flow
	// direction channel.
	FlowDirection float64 `yaml:"flow_direction"`
}

// Key uniquely identifies a registry entry for cursors, logs and metric
// labels. A site hosting both AWS and EWS equipment appears twice under the
// same name, so the family is part of the key.
func (c Config) Key() string {
	return c.Name + "-" + string(c.Family)
}

// Validate checks that the config carries the layout its family requires.
func (c Config) Validate() error {
	switch c.Family {
	case FamilyAWS:
		if c.AWS == nil || len(c.AWS.Fields) == 0 {
			return fmt.Errorf("station %s: aws family requires an aws field layout", c.Name)
		}
	case FamilyEWSTriplet:
		if c.Triplet == nil || c.Triplet.Flag == "" {
			return fmt.Errorf("station %s: ews-triplet family requires a triplet layout", c.Name)
		}
	case FamilyEWSColumn:
		if c.Columns == nil || len(c.Columns.Cached) == 0 {
			return fmt.Errorf("station %s: ews-column family requires a column layout", c.Name)
		}
	default:
		return fmt.Errorf("station %s: unknown family %q", c.Name, c.Family)
	}
	if c.Folder == "" {
		return fmt.Errorf("station %s: folder is required", c.Name)
	}
	if c.StationID == "" {
		return fmt.Errorf("station %s: station_id is required", c.Name)
	}
	return nil
}

// Load reads a station registry from a YAML file.
func Load(path string) ([]Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read station registry: %w", err)
	}
	var file struct {
		Stations []Config `yaml:"stations"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse station registry: %w", err)
	}
	if len(file.Stations) == 0 {
		return nil, fmt.Errorf("station registry %s defines no stations", path)
	}
	for _, st := range file.Stations {
		if err := st.Validate(); err != nil {
			return nil, err
		}
	}
	return file.Stations, nil
}

// awsFields is the header candidate table shared by the deployed AWS stations.
// Candidate order matters: precipitation prefers the "Current Precipitation"
// column where the firmware provides one and falls back to the lifetime total.
func awsFields() map[string][]string {
	return map[string][]string{
		domain.ParamPIR:              {"PIR"},
		domain.ParamAvgPIR:           {"Avg PIR"},
		domain.ParamWindSpeed:        {"wind speed"},
		domain.ParamWindDirection:    {"Wind Direction"},
		domain.ParamRain:             {"Rain"},
		domain.ParamTemperature:      {"Temp", "TEMPERATURE"},
		domain.ParamRelativeHumidity: {"Relative Humidity"},
		domain.ParamPressure:         {"Pressure"},
		domain.ParamBucketWeight:     {"Bucket Weight"},
		domain.ParamPrecipitation:    {"Current Precipitation", "Total Amount of Precipitation"},
	}
}

// Defaults returns the compiled-in registry matching the deployed network.
func Defaults() []Config {
	return []Config{
		{
			Name:       "Lambagad",
			Family:     FamilyAWS,
			Folder:     "/Hydrology_Backup/Lambagad_AWS",
			DeviceID:   "31928",
			StationID:  "ST015",
			ServicesID: "AWS",
			UID:        "U001",
			AWS:        &AWSLayout{Fields: awsFields()},
		},
		{
			Name:       "Mana",
			Family:     FamilyAWS,
			Folder:     "/Hydrology_Backup/Mana_AWS",
			DeviceID:   "31929",
			StationID:  "ST019",
			ServicesID: "AWS",
			UID:        "U001",
			AWS:        &AWSLayout{Fields: awsFields()},
		},
		{
			Name:       "Vasudhara",
			Family:     FamilyAWS,
			Folder:     "/Hydrology_Backup/Vasudhara_AWS",
			DeviceID:   "31930",
			StationID:  "ST020",
			ServicesID: "AWS",
			UID:        "U001",
			AWS:        &AWSLayout{Fields: awsFields()},
		},
		{
			Name:      "Vasudhara",
			Family:    FamilyEWSTriplet,
			Folder:    "/Hydrology/Vasudhara_EWS",
			DeviceID:  "32930",
			StationID: "ST020",
			UID:       "U001",
			Triplet: &TripletLayout{
				Flag:               "B",
				SurfaceVelocityCol: 10,
				Pairs: map[string]int{
					domain.ParamAvgSurfaceVelocity: 2,
					domain.ParamWaterDistSensor:    3,
					domain.ParamWaterLevel:         4,
					domain.ParamTiltAngle:          5,
					domain.ParamFlowDirection:      6,
					domain.ParamWaterDischarge:     7,
				},
				Aux: map[string]int{
					domain.ParamInternalTemperature: 31,
					domain.ParamChargeCurrent:       34,
					domain.ParamObservedCurrent:     37,
					domain.ParamBatteryVoltage:      40,
					domain.ParamSolarPanelTracking:  43,
				},
				Substituted: []string{domain.ParamAvgSurfaceVelocity},
			},
			SeedParams: []string{
				domain.ParamAvgSurfaceVelocity,
				domain.ParamWaterDischarge,
			},
		},
		{
			Name:      "Mana",
			Family:    FamilyEWSColumn,
			Folder:    "/Hydrology_Backup/Mana_EWS",
			DeviceID:  "32929",
			StationID: "ST019",
			UID:       "U001",
			Columns: &ColumnLayout{
				Cached: map[string]int{
					domain.ParamSurfaceVelocity:    1,
					domain.ParamAvgSurfaceVelocity: 2,
					domain.ParamTiltAngle:          3,
					domain.ParamSNR:                5,
					domain.ParamWaterDischarge:     6,
				},
				Raw: map[string]int{
					domain.ParamWaterDistSensor: 7,
					domain.ParamWaterLevel:      8,
				},
				FlowDirection: 0,
			},
			SeedParams: []string{
				domain.ParamSurfaceVelocity,
				domain.ParamAvgSurfaceVelocity,
				domain.ParamSNR,
				domain.ParamWaterDischarge,
			},
		},
	}
}
