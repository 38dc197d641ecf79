package config

import "time"

// SetDefaults applies default values to unset configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "relief.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = time.Hour
	}

	// Matching defaults mirror matching.DefaultConfig
	if cfg.Matching.MaxProximityDistanceKm == 0 {
		cfg.Matching.MaxProximityDistanceKm = 100
	}
	if cfg.Matching.ProximityWeight == 0 {
		cfg.Matching.ProximityWeight = 0.3
	}
	if cfg.Matching.CategoryMatchWeight == 0 {
		cfg.Matching.CategoryMatchWeight = 0.5
	}
	if cfg.Matching.MinPartialFulfillmentPercent == 0 {
		cfg.Matching.MinPartialFulfillmentPercent = 10
	}

	// Priority aging defaults (standard preset)
	if cfg.Priority.LowToMediumHours == 0 {
		cfg.Priority.LowToMediumHours = 24
	}
	if cfg.Priority.MediumToHighHours == 0 {
		cfg.Priority.MediumToHighHours = 12
	}
	if cfg.Priority.HighToCriticalHours == 0 {
		cfg.Priority.HighToCriticalHours = 6
	}

	// Dashboard defaults
	if cfg.Dashboard.PanicThresholdHours == 0 {
		cfg.Dashboard.PanicThresholdHours = 1.0
	}
	if cfg.Dashboard.TopCriticalCount == 0 {
		cfg.Dashboard.TopCriticalCount = 5
	}

	// Audit defaults
	if cfg.Audit.MaxInMemoryLogs == 0 {
		cfg.Audit.MaxInMemoryLogs = 1000
	}

	// Daemon defaults
	if cfg.Daemon.CycleInterval == 0 {
		cfg.Daemon.CycleInterval = 30 * time.Second
	}
}
