package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PropertyModel represents the properties table (the old roomie_property.Property).
type PropertyModel struct {
	PropertyID uuid.UUID `gorm:"column:property_id;type:uuid;default:gen_random_uuid();primaryKey" json:"property_id"`

	// FK to users: owner (CASCADE) and optional supervisor (SET NULL)
	PropertyOwnerID      uuid.UUID  `gorm:"column:property_owner_id;type:uuid;not null;index:idx_properties_owner" json:"property_owner_id"`
	PropertySupervisorID *uuid.UUID `gorm:"column:property_supervisor_id;type:uuid" json:"property_supervisor_id,omitempty"`

	// Address
	PropertyStreet      string `gorm:"column:property_street;size:255;not null" json:"property_street"`
	PropertyHouseNumber string `gorm:"column:property_house_number;size:20;not null" json:"property_house_number"`
	PropertyTown        string `gorm:"column:property_town;size:100;not null" json:"property_town"`
	PropertyCounty      string `gorm:"column:property_county;size:100;not null" json:"property_county"`
	PropertyCountry     string `gorm:"column:property_country;size:100;not null" json:"property_country"`

	PropertyDescription *string `gorm:"column:property_description;type:text" json:"property_description,omitempty"`

	PropertyRating         decimal.Decimal `gorm:"column:property_rating;type:numeric(3,1);not null;default:5.0" json:"property_rating"`
	PropertyRoomCapacity   int             `gorm:"column:property_room_capacity;not null" json:"property_room_capacity"`
	PropertyPeopleCapacity int             `gorm:"column:property_people_capacity;not null" json:"property_people_capacity"`

	// Rent & deposit are optional until the owner sets them
	PropertyRentAmount    decimal.NullDecimal `gorm:"column:property_rent_amount;type:numeric(10,2)" json:"property_rent_amount,omitempty"`
	PropertyDepositAmount decimal.NullDecimal `gorm:"column:property_deposit_amount;type:numeric(10,2)" json:"property_deposit_amount,omitempty"`

	PropertyImageURLs pq.StringArray `gorm:"column:property_image_urls;type:text[]" json:"property_image_urls,omitempty"`

	PropertyCreatedAt time.Time      `gorm:"column:property_created_at;autoCreateTime" json:"property_created_at"`
	PropertyUpdatedAt *time.Time     `gorm:"column:property_updated_at;autoUpdateTime" json:"property_updated_at,omitempty"`
	PropertyDeletedAt gorm.DeletedAt `gorm:"column:property_deleted_at;index" json:"property_deleted_at,omitempty"`
}

func (PropertyModel) TableName() string { return "properties" }

func (p *PropertyModel) BeforeCreate(tx *gorm.DB) error {
	if p.PropertyID == uuid.Nil {
		p.PropertyID = uuid.New()
	}
	if p.PropertyRating.IsZero() {
		p.PropertyRating = decimal.NewFromFloat(5.0)
	}
	return nil
}

// FullAddress returns the address as a single string.
func (p *PropertyModel) FullAddress() string {
	return p.PropertyHouseNumber + " " + p.PropertyStreet + ", " + p.PropertyTown + ", " + p.PropertyCounty + ", " + p.PropertyCountry
}
