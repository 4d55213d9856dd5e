// Package mysql is the persistence sink and history reader. Decoded
// observations are batch-inserted one multi-row statement per station per
// poll cycle; reads serve cache seeding and the forecast window.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"hydro-telemetry/internal/config"
	"hydro-telemetry/internal/domain"
)

// Store wraps the MySQL connection pool shared by all stations.
type Store struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// Open connects to MySQL and verifies the connection.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	mc := gomysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", cfg.DBHost, cfg.DBPort)
	mc.User = cfg.DBUser
	mc.Passwd = cfg.DBPassword
	mc.DBName = cfg.DBName
	mc.ParseTime = true

	db, err := sqlx.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxConns)
	db.SetMaxIdleConns(cfg.DBMaxConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	logger.Info("mysql connected", "addr", mc.Addr, "database", cfg.DBName)
	return &Store{db: db, logger: logger}, nil
}

// NewWithDB wraps an existing connection, for tests.
func NewWithDB(db *sqlx.DB, logger *slog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// HealthCheck pings the database within a short deadline.
func (s *Store) HealthCheck(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.db.PingContext(pingCtx)
}

// InsertAWSBatch writes weather-station records in one multi-row insert.
func (s *Store) InsertAWSBatch(ctx context.Context, recs []domain.AWSRecord) error {
	if len(recs) == 0 {
		return nil
	}
	args := make([]any, 0, len(recs)*16)
	for _, r := range recs {
		args = append(args,
			r.DeviceID, r.StationID, r.ServicesID, r.EventStateID,
			r.WindSpeed, r.WindDirection, r.Temperature, r.RelativeHumidity,
			r.Pressure, r.PIR, r.AvgPIR, r.BucketWeight,
			r.Precipitation, r.Rain, r.Timestamp, r.UID,
		)
	}
	query := `INSERT INTO AWS_retrieved_db_data
		(DeviceID, StationID, ServicesID, eventStateID, windspeed, winddirection,
		temperature, relative_humidity, pressure, PIR, avg_PIR, bucket_weight,
		precipitation, rain, timestamp, UID)
		VALUES ` + valuePlaceholders(len(recs), 16)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert aws batch: %w", err)
	}
	return nil
}

// InsertEWSBatch writes gauge-station records in one multi-row insert.
func (s *Store) InsertEWSBatch(ctx context.Context, recs []domain.EWSRecord) error {
	if len(recs) == 0 {
		return nil
	}
	args := make([]any, 0, len(recs)*17)
	for _, r := range recs {
		args = append(args,
			r.StationID, r.DeviceID, r.SurfaceVelocity, r.AvgSurfaceVelocity,
			r.WaterDistSensor, r.WaterLevel, r.WaterDischarge,
			r.TiltAngle, r.FlowDirection, r.SNR,
			r.InternalTemperature, r.ChargeCurrent, r.ObservedCurrent,
			r.BatteryVoltage, r.SolarPanelTracking,
			r.Timestamp, r.UID,
		)
	}
	query := `INSERT INTO EWS_retrieved_db_data
		(StationID, DeviceID, surface_velocity, avg_surface_velocity,
		water_dist_sensor, water_level, water_discharge,
		tilt_angle, flow_direction, SNR,
		internal_temperature, charge_current, observed_current,
		battery_voltage, solar_panel_tracking,
		timestamp, UID)
		VALUES ` + valuePlaceholders(len(recs), 17)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert ews batch: %w", err)
	}
	return nil
}

// seedColumns whitelists parameters that may be interpolated into the cache
// seeding query; parameter names are identifiers, not bindable values.
var seedColumns = map[string]bool{
	domain.ParamSurfaceVelocity:    true,
	domain.ParamAvgSurfaceVelocity: true,
	domain.ParamSNR:                true,
	domain.ParamWaterDischarge:     true,
	domain.ParamWaterLevel:         true,
	domain.ParamTiltAngle:          true,
}

// LastNonZero returns the most recent non-null, non-zero value of an EWS
// parameter for a station, or nil when no such row exists.
func (s *Store) LastNonZero(ctx context.Context, stationID, param string) (*float64, error) {
	if !seedColumns[param] {
		return nil, fmt.Errorf("parameter %q is not seedable", param)
	}
	query := fmt.Sprintf(`SELECT %s FROM EWS_retrieved_db_data
		WHERE StationID = ? AND %s IS NOT NULL AND %s != 0
		ORDER BY timestamp DESC LIMIT 1`, param, param, param)

	var v float64
	err := s.db.GetContext(ctx, &v, query, stationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last non-zero %s for %s: %w", param, stationID, err)
	}
	return &v, nil
}

// awsSeriesRow scans the nullable columns feeding the forecast.
type awsSeriesRow struct {
	Timestamp        time.Time       `db:"timestamp"`
	Temperature      sql.NullFloat64 `db:"temperature"`
	RelativeHumidity sql.NullFloat64 `db:"relative_humidity"`
	Pressure         sql.NullFloat64 `db:"pressure"`
	WindSpeed        sql.NullFloat64 `db:"windspeed"`
	Rain             sql.NullFloat64 `db:"rain"`
}

// RecentAWS returns up to limit weather observations for a station, newest
// first, carrying just the columns the forecast needs.
func (s *Store) RecentAWS(ctx context.Context, stationID string, limit int) ([]domain.AWSRecord, error) {
	query := `SELECT timestamp, temperature, relative_humidity, pressure, windspeed, rain
		FROM AWS_retrieved_db_data
		WHERE StationID = ?
		ORDER BY timestamp DESC
		LIMIT ?`

	var rows []awsSeriesRow
	if err := s.db.SelectContext(ctx, &rows, query, stationID, limit); err != nil {
		return nil, fmt.Errorf("recent aws rows for %s: %w", stationID, err)
	}

	recs := make([]domain.AWSRecord, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, domain.AWSRecord{
			StationID:        stationID,
			Timestamp:        r.Timestamp,
			Temperature:      nullableFloat(r.Temperature),
			RelativeHumidity: nullableFloat(r.RelativeHumidity),
			Pressure:         nullableFloat(r.Pressure),
			WindSpeed:        nullableFloat(r.WindSpeed),
			Rain:             nullableFloat(r.Rain),
		})
	}
	return recs, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

// valuePlaceholders builds "(?,...),(?,...)" for a multi-row insert.
func valuePlaceholders(rows, cols int) string {
	row := "(" + strings.TrimSuffix(strings.Repeat("?,", cols), ",") + ")"
	out := make([]string, rows)
	for i := range out {
		out[i] = row
	}
	return strings.Join(out, ",")
}
