package sweeprecorder

import (
	"os"
)

const (
	measurementDispatchSweep = "dispatch_sweep"
	measurementCalendarSync  = "calendar_sync"
)

type Config struct {
	Disabled bool

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string

	BigQueryProjectID     string
	BigQueryDataset       string
	BigQueryDispatchTable string
	BigQueryCalendarTable string
}

func LoadConfig() *Config {
	return &Config{
		Disabled: os.Getenv("SWEEP_RESULTS_DISABLED") == "true",

		InfluxDBURL:    getEnvOrDefault("INFLUXDB_URL", "http://localhost:8086"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: getEnvOrDefault("INFLUXDB_BUCKET", "jetlag_results"),

		BigQueryProjectID:     getEnvOrDefault("BIGQUERY_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		BigQueryDataset:       getEnvOrDefault("BIGQUERY_DATASET", "jetlag_results"),
		BigQueryDispatchTable: getEnvOrDefault("BIGQUERY_DISPATCH_TABLE", "dispatch_sweeps"),
		BigQueryCalendarTable: getEnvOrDefault("BIGQUERY_CALENDAR_TABLE", "calendar_syncs"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
