package persistence

import (
	"time"
)

// NeedModel represents the needs table
type NeedModel struct {
	ID                string     `gorm:"column:id;primaryKey;not null"`
	CreatedAt         time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;not null"`
	Deleted           bool       `gorm:"column:deleted;not null;default:false"`
	Title             string     `gorm:"column:title;not null"`
	Description       string     `gorm:"column:description;type:text"`
	Category          string     `gorm:"column:category;index;not null"`
	Priority          string     `gorm:"column:priority;not null"`
	QuantityRequired  int        `gorm:"column:quantity_required;not null"`
	QuantityFulfilled int        `gorm:"column:quantity_fulfilled;not null;default:0"`
	Unit              string     `gorm:"column:unit"`
	Latitude          float64    `gorm:"column:latitude"`
	Longitude         float64    `gorm:"column:longitude"`
	Address           string     `gorm:"column:address"`
	City              string     `gorm:"column:city"`
	Region            string     `gorm:"column:region"`
	RequestedBy       string     `gorm:"column:requested_by"`
	ContactInfo       string     `gorm:"column:contact_info"`
	Deadline          *time.Time `gorm:"column:deadline"`
	Notes             string     `gorm:"column:notes;type:text"`
}

func (NeedModel) TableName() string {
	return "needs"
}

// SupplyModel represents the supplies table
type SupplyModel struct {
	ID                string     `gorm:"column:id;primaryKey;not null"`
	CreatedAt         time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;not null"`
	Deleted           bool       `gorm:"column:deleted;not null;default:false"`
	Name              string     `gorm:"column:name;not null"`
	Category          string     `gorm:"column:category;index;not null"`
	QuantityAvailable int        `gorm:"column:quantity_available;not null"`
	QuantityReserved  int        `gorm:"column:quantity_reserved;not null;default:0"`
	Unit              string     `gorm:"column:unit"`
	Latitude          float64    `gorm:"column:latitude"`
	Longitude         float64    `gorm:"column:longitude"`
	Address           string     `gorm:"column:address"`
	City              string     `gorm:"column:city"`
	Region            string     `gorm:"column:region"`
	Supplier          string     `gorm:"column:supplier"`
	ExpirationDate    *time.Time `gorm:"column:expiration_date"`
	MinimumStock      int        `gorm:"column:minimum_stock;not null;default:0"`
	SKU               string     `gorm:"column:sku"`
	Condition         string     `gorm:"column:condition"`
}

func (SupplyModel) TableName() string {
	return "supplies"
}

// ShipmentModel represents the shipments table
type ShipmentModel struct {
	ID                string     `gorm:"column:id;primaryKey;not null"`
	CreatedAt         time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;not null"`
	Deleted           bool       `gorm:"column:deleted;not null;default:false"`
	TrackingCode      string     `gorm:"column:tracking_code;index;not null"`
	Status            string     `gorm:"column:status;not null"`
	Priority          string     `gorm:"column:priority;not null"`
	NeedID            *string    `gorm:"column:need_id"`
	SupplyID          *string    `gorm:"column:supply_id"`
	OriginLatitude    float64    `gorm:"column:origin_latitude"`
	OriginLongitude   float64    `gorm:"column:origin_longitude"`
	OriginAddress     string     `gorm:"column:origin_address"`
	OriginCity        string     `gorm:"column:origin_city"`
	OriginRegion      string     `gorm:"column:origin_region"`
	DestLatitude      float64    `gorm:"column:dest_latitude"`
	DestLongitude     float64    `gorm:"column:dest_longitude"`
	DestAddress       string     `gorm:"column:dest_address"`
	DestCity          string     `gorm:"column:dest_city"`
	DestRegion        string     `gorm:"column:dest_region"`
	Quantity          int        `gorm:"column:quantity;not null"`
	Unit              string     `gorm:"column:unit"`
	ScheduledDispatch *time.Time `gorm:"column:scheduled_dispatch"`
	ActualDispatch    *time.Time `gorm:"column:actual_dispatch"`
	EstimatedArrival  *time.Time `gorm:"column:estimated_arrival"`
	ActualDelivery    *time.Time `gorm:"column:actual_delivery"`
	Carrier           string     `gorm:"column:carrier"`
	VehicleInfo       string     `gorm:"column:vehicle_info"`
	DriverName        string     `gorm:"column:driver_name"`
	RecipientName     string     `gorm:"column:recipient_name"`
	Notes             string     `gorm:"column:notes;type:text"`
	ProofOfDelivery   string     `gorm:"column:proof_of_delivery"`
}

func (ShipmentModel) TableName() string {
	return "shipments"
}

// AllModels lists every model for automigration
func AllModels() []interface{} {
	return []interface{}{
		&NeedModel{},
		&SupplyModel{},
		&ShipmentModel{},
	}
}
