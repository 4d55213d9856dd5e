package domain

// Parameter names double as cache keys and as column names in the persistence
// schema, so they must match the DB columns exactly (including the historical
// casing of PIR, avg_PIR and SNR).
const (
	ParamPIR              = "PIR"
	ParamAvgPIR           = "avg_PIR"
	ParamWindSpeed        = "windspeed"
	ParamWindDirection    = "winddirection"
	ParamRain             = "rain"
	ParamTemperature      = "temperature"
	ParamRelativeHumidity = "relative_humidity"
	ParamPressure         = "pressure"
	ParamBucketWeight     = "bucket_weight"
	ParamPrecipitation    = "precipitation"

	ParamSurfaceVelocity     = "surface_velocity"
	ParamAvgSurfaceVelocity  = "avg_surface_velocity"
	ParamWaterDistSensor     = "water_dist_sensor"
	ParamWaterLevel          = "water_level"
	ParamWaterDischarge      = "water_discharge"
	ParamTiltAngle           = "tilt_angle"
	ParamFlowDirection       = "flow_direction"
	ParamSNR                 = "SNR"
	ParamInternalTemperature = "internal_temperature"
	ParamChargeCurrent       = "charge_current"
	ParamObservedCurrent     = "observed_current"
	ParamBatteryVoltage      = "battery_voltage"
	ParamSolarPanelTracking  = "solar_panel_tracking"
)
