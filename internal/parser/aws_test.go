package parser

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydro-telemetry/internal/domain"
	"hydro-telemetry/internal/station"
)

func awsStation() station.Config {
	return station.Config{
		Name:       "Mana",
		Family:     station.FamilyAWS,
		Folder:     "/tmp/mana_aws",
		DeviceID:   "31929",
		StationID:  "ST019",
		ServicesID: "AWS",
		UID:        "U001",
		AWS: &station.AWSLayout{Fields: map[string][]string{
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
		}},
	}
}

const awsFileContent = `Station Report
Date Time,PIR,Avg PIR,wind speed,Wind Direction,Rain,Temp,Relative Humidity,Pressure,Bucket Weight,Current Precipitation
01/05/12/12/2025/ 10:00:00,820.0,810.5,3.20,180,0.0,12.50,45.2,655.10,11.20,104.5
01/05/12/12/2025/ 10:15:00,825.5,812.0,3.45,175,0.2,12.75,44.8,655.00,11.25,104.7
`

func TestParseAWSFile(t *testing.T) {
	rec, err := ParseAWSFile(awsStation(), awsFileContent)
	require.NoError(t, err)
	require.NotNil(t, rec)

	t.Run("identity and event tags", func(t *testing.T) {
		assert.Equal(t, "31929", rec.DeviceID)
		assert.Equal(t, "ST019", rec.StationID)
		assert.Equal(t, "AWS", rec.ServicesID)
		assert.Equal(t, "U001", rec.UID)
		assert.Equal(t, domain.EventStateInstant, rec.EventStateID)
	})

	t.Run("only the last data row is decoded", func(t *testing.T) {
		require.NotNil(t, rec.PIR)
		assert.Equal(t, 825.5, *rec.PIR)
		require.NotNil(t, rec.Temperature)
		assert.Equal(t, 12.75, *rec.Temperature)
		require.NotNil(t, rec.Rain)
		assert.Equal(t, 0.2, *rec.Rain)
	})

	t.Run("timestamp decoded from the logger encoding", func(t *testing.T) {
		assert.Equal(t, time.Date(2025, 12, 5, 10, 15, 0, 0, time.Local), rec.Timestamp)
	})

	t.Run("all payload fields resolved", func(t *testing.T) {
		require.NotNil(t, rec.Precipitation)
		assert.Equal(t, 104.7, *rec.Precipitation)
		require.NotNil(t, rec.WindDirection)
		assert.Equal(t, 175.0, *rec.WindDirection)
		require.NotNil(t, rec.BucketWeight)
		assert.Equal(t, 11.25, *rec.BucketWeight)
	})
}

func TestParseAWSFile_HeaderHandling(t *testing.T) {
	t.Run("missing header rejects the file", func(t *testing.T) {
		_, err := ParseAWSFile(awsStation(), "1,2,3\n4,5,6\n")
		require.ErrorIs(t, err, ErrNoHeader)
	})

	t.Run("header but no data rows", func(t *testing.T) {
		rec, err := ParseAWSFile(awsStation(), "Date Time,PIR\n")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("header located case-insensitively mid-file", func(t *testing.T) {
		content := "logger v2 dump\nDATE TIME,Temp\n01/05/12/12/2025/ 10:00:00,8.5\n"
		rec, err := ParseAWSFile(awsStation(), content)
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.NotNil(t, rec.Temperature)
		assert.Equal(t, 8.5, *rec.Temperature)
	})

	t.Run("unmatched columns resolve to nil", func(t *testing.T) {
		content := "Date Time,Temp\n01/05/12/12/2025/ 10:00:00,8.5\n"
		rec, err := ParseAWSFile(awsStation(), content)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Nil(t, rec.Pressure)
		assert.Nil(t, rec.WindSpeed)
		assert.Nil(t, rec.Precipitation)
	})
}

func TestParseAWSFile_TimestampFallback(t *testing.T) {
	frozen := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	content := "Date Time,Temp\nnot-a-timestamp,9.1\n"
	rec, err := ParseAWSFile(awsStation(), content)
	require.NoError(t, err)
	require.NotNil(t, rec)

	// Unparseable timestamps fall back to ingestion wall-clock time; the
	// record never carries a zero timestamp.
	assert.Equal(t, frozen, rec.Timestamp)
	assert.False(t, rec.Timestamp.IsZero())
}

func TestParseAWSFile_NonNumericFields(t *testing.T) {
	content := "Date Time,Temp,Pressure,Rain\n01/05/12/12/2025/ 10:00:00,ERR,,0\n"
	rec, err := ParseAWSFile(awsStation(), content)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Nil(t, rec.Temperature)
	assert.Nil(t, rec.Pressure)
	// Zero is a real reading, distinct from missing.
	require.NotNil(t, rec.Rain)
	assert.Equal(t, 0.0, *rec.Rain)
}
