package cmd

import "time"

// Config carries the process configuration, populated from the
// environment by the entry point.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr            string
	NotificationsChannel string

	// GroupingSchedule is a six-field cron expression driving the
	// grouping job. Lookback and limit bound each run's candidate scan.
	GroupingSchedule string
	GroupingLookback time.Duration
	GroupingLimit    int

	// FloorFee is the flat fee charged on zero-price orders.
	FloorFee float64
}
