package config

import (
	"time"

	"github.com/reliefops/logistics-go/internal/application/dashboard"
	"github.com/reliefops/logistics-go/internal/domain/matching"
)

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Connection type: "postgres" or "sqlite"
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// Full connection URL (takes precedence over individual fields)
	URL string `mapstructure:"url"`

	// PostgreSQL connection fields (used if URL is empty)
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// SQLite connection field
	Path string `mapstructure:"path"`

	// Connection pool settings
	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig holds connection pool configuration
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// MatchingConfig holds the matching engine tunables
type MatchingConfig struct {
	MaxProximityDistanceKm       float64 `mapstructure:"max_proximity_distance_km" validate:"min=0"`
	ProximityWeight              float64 `mapstructure:"proximity_weight" validate:"min=0"`
	CategoryMatchWeight          float64 `mapstructure:"category_match_weight" validate:"min=0"`
	AllowPartialFulfillment      *bool   `mapstructure:"allow_partial_fulfillment"`
	MinPartialFulfillmentPercent float64 `mapstructure:"min_partial_fulfillment_percent" validate:"min=0,max=100"`
}

// ToDomain converts the section into the matching engine's config
func (c MatchingConfig) ToDomain() matching.Config {
	cfg := matching.DefaultConfig()
	if c.MaxProximityDistanceKm > 0 {
		cfg.MaxProximityDistanceKm = c.MaxProximityDistanceKm
	}
	if c.ProximityWeight > 0 {
		cfg.ProximityWeight = c.ProximityWeight
	}
	if c.CategoryMatchWeight > 0 {
		cfg.CategoryMatchWeight = c.CategoryMatchWeight
	}
	if c.AllowPartialFulfillment != nil {
		cfg.AllowPartialFulfillment = *c.AllowPartialFulfillment
	}
	if c.MinPartialFulfillmentPercent > 0 {
		cfg.MinPartialFulfillmentPercent = c.MinPartialFulfillmentPercent
	}
	return cfg
}

// PriorityConfig holds the aging thresholds
type PriorityConfig struct {
	// EmergencyPreset switches to the aggressive 6/3/1 thresholds
	EmergencyPreset bool `mapstructure:"emergency_preset"`

	LowToMediumHours    float64 `mapstructure:"low_to_medium_hours" validate:"min=0"`
	MediumToHighHours   float64 `mapstructure:"medium_to_high_hours" validate:"min=0"`
	HighToCriticalHours float64 `mapstructure:"high_to_critical_hours" validate:"min=0"`
}

// ToDomain converts the section into the priority manager's aging config.
// The emergency preset wins over the explicit hour fields.
func (c PriorityConfig) ToDomain() matching.AgingConfig {
	if c.EmergencyPreset {
		return matching.EmergencyAgingConfig()
	}

	cfg := matching.DefaultAgingConfig()
	if c.LowToMediumHours > 0 {
		cfg.LowToMediumHours = c.LowToMediumHours
	}
	if c.MediumToHighHours > 0 {
		cfg.MediumToHighHours = c.MediumToHighHours
	}
	if c.HighToCriticalHours > 0 {
		cfg.HighToCriticalHours = c.HighToCriticalHours
	}
	return cfg
}

// DashboardConfig holds dashboard and panic detector settings
type DashboardConfig struct {
	PanicThresholdHours float64 `mapstructure:"panic_threshold_hours" validate:"min=0"`
	TopCriticalCount    int     `mapstructure:"top_critical_count" validate:"min=0"`
}

// ToDomain converts the section into the dashboard service's config
func (c DashboardConfig) ToDomain() dashboard.Config {
	cfg := dashboard.DefaultConfig()
	if c.PanicThresholdHours > 0 {
		cfg.PanicThresholdHours = c.PanicThresholdHours
	}
	if c.TopCriticalCount > 0 {
		cfg.TopCriticalCount = c.TopCriticalCount
	}
	return cfg
}

// AuditConfig holds audit log settings
type AuditConfig struct {
	MaxInMemoryLogs int    `mapstructure:"max_in_memory_logs" validate:"min=0"`
	FilePath        string `mapstructure:"file_path"`
}

// DaemonConfig holds the continuous matching loop settings
type DaemonConfig struct {
	CycleInterval time.Duration `mapstructure:"cycle_interval"`
}
