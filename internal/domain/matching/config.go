package matching

// Config holds the tunables of a matching pass
type Config struct {
	// MaxProximityDistanceKm is the distance beyond which proximity
	// contributes no score
	MaxProximityDistanceKm float64

	// ProximityWeight multiplies the proximity sub-score
	ProximityWeight float64

	// CategoryMatchWeight multiplies the category sub-score
	CategoryMatchWeight float64

	// AllowPartialFulfillment permits allocating less than a need's full
	// remaining quantity
	AllowPartialFulfillment bool

	// MinPartialFulfillmentPercent rejects partial allocations whose first
	// slice is below this fraction of the required quantity
	MinPartialFulfillmentPercent float64
}

// DefaultConfig returns the standard matching configuration
func DefaultConfig() Config {
	return Config{
		MaxProximityDistanceKm:       100,
		ProximityWeight:              0.3,
		CategoryMatchWeight:          0.5,
		AllowPartialFulfillment:      true,
		MinPartialFulfillmentPercent: 10,
	}
}

// AgingConfig holds the wait-time thresholds (hours) at which a base
// priority starts escalating
type AgingConfig struct {
	LowToMediumHours    float64
	MediumToHighHours   float64
	HighToCriticalHours float64
}

// DefaultAgingConfig returns the standard aging thresholds
func DefaultAgingConfig() AgingConfig {
	return AgingConfig{
		LowToMediumHours:    24,
		MediumToHighHours:   12,
		HighToCriticalHours: 6,
	}
}

// EmergencyAgingConfig returns the aggressive preset used during declared
// emergencies
func EmergencyAgingConfig() AgingConfig {
	return AgingConfig{
		LowToMediumHours:    6,
		MediumToHighHours:   3,
		HighToCriticalHours: 1,
	}
}
