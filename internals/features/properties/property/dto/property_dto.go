package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nlekkerman/roomie/internals/features/properties/property/model"
)

// =============================
// Request DTOs
// =============================

type CreatePropertyRequest struct {
	PropertyStreet      string `json:"property_street" validate:"required,max=255"`
	PropertyHouseNumber string `json:"property_house_number" validate:"required,max=20"`
	PropertyTown        string `json:"property_town" validate:"required,max=100"`
	PropertyCounty      string `json:"property_county" validate:"required,max=100"`
	PropertyCountry     string `json:"property_country" validate:"required,max=100"`

	PropertyDescription *string `json:"property_description"`

	PropertyRoomCapacity   int `json:"property_room_capacity" validate:"required,min=1"`
	PropertyPeopleCapacity int `json:"property_people_capacity" validate:"required,min=1"`

	PropertyRentAmount    *decimal.Decimal `json:"property_rent_amount"`
	PropertyDepositAmount *decimal.Decimal `json:"property_deposit_amount"`

	PropertySupervisorID *uuid.UUID `json:"property_supervisor_id"`
}

func (r *CreatePropertyRequest) ToModel(ownerID uuid.UUID) *model.PropertyModel {
	m := &model.PropertyModel{
		PropertyOwnerID:        ownerID,
		PropertySupervisorID:   r.PropertySupervisorID,
		PropertyStreet:         r.PropertyStreet,
		PropertyHouseNumber:    r.PropertyHouseNumber,
		PropertyTown:           r.PropertyTown,
		PropertyCounty:         r.PropertyCounty,
		PropertyCountry:        r.PropertyCountry,
		PropertyDescription:    r.PropertyDescription,
		PropertyRoomCapacity:   r.PropertyRoomCapacity,
		PropertyPeopleCapacity: r.PropertyPeopleCapacity,
	}
	if r.PropertyRentAmount != nil {
		m.PropertyRentAmount = decimal.NewNullDecimal(*r.PropertyRentAmount)
	}
	if r.PropertyDepositAmount != nil {
		m.PropertyDepositAmount = decimal.NewNullDecimal(*r.PropertyDepositAmount)
	}
	return m
}

type UpdatePropertyRequest struct {
	PropertyStreet      *string `json:"property_street" validate:"omitempty,max=255"`
	PropertyHouseNumber *string `json:"property_house_number" validate:"omitempty,max=20"`
	PropertyTown        *string `json:"property_town" validate:"omitempty,max=100"`
	PropertyCounty      *string `json:"property_county" validate:"omitempty,max=100"`
	PropertyCountry     *string `json:"property_country" validate:"omitempty,max=100"`

	PropertyDescription *string `json:"property_description"`

	PropertyRoomCapacity   *int `json:"property_room_capacity" validate:"omitempty,min=1"`
	PropertyPeopleCapacity *int `json:"property_people_capacity" validate:"omitempty,min=1"`

	PropertyRentAmount    *decimal.Decimal `json:"property_rent_amount"`
	PropertyDepositAmount *decimal.Decimal `json:"property_deposit_amount"`

	PropertySupervisorID *uuid.UUID `json:"property_supervisor_id"`
}

func (r *UpdatePropertyRequest) ApplyToModel(m *model.PropertyModel) {
	if r.PropertyStreet != nil {
		m.PropertyStreet = *r.PropertyStreet
	}
	if r.PropertyHouseNumber != nil {
		m.PropertyHouseNumber = *r.PropertyHouseNumber
	}
	if r.PropertyTown != nil {
		m.PropertyTown = *r.PropertyTown
	}
	if r.PropertyCounty != nil {
		m.PropertyCounty = *r.PropertyCounty
	}
	if r.PropertyCountry != nil {
		m.PropertyCountry = *r.PropertyCountry
	}
	if r.PropertyDescription != nil {
		m.PropertyDescription = r.PropertyDescription
	}
	if r.PropertyRoomCapacity != nil {
		m.PropertyRoomCapacity = *r.PropertyRoomCapacity
	}
	if r.PropertyPeopleCapacity != nil {
		m.PropertyPeopleCapacity = *r.PropertyPeopleCapacity
	}
	if r.PropertyRentAmount != nil {
		m.PropertyRentAmount = decimal.NewNullDecimal(*r.PropertyRentAmount)
	}
	if r.PropertyDepositAmount != nil {
		m.PropertyDepositAmount = decimal.NewNullDecimal(*r.PropertyDepositAmount)
	}
	if r.PropertySupervisorID != nil {
		m.PropertySupervisorID = r.PropertySupervisorID
	}
}

// =============================
// Response DTOs
// =============================

type PropertyResponse struct {
	PropertyID           uuid.UUID  `json:"property_id"`
	PropertyOwnerID      uuid.UUID  `json:"property_owner_id"`
	PropertySupervisorID *uuid.UUID `json:"property_supervisor_id,omitempty"`

	PropertyStreet      string `json:"property_street"`
	PropertyHouseNumber string `json:"property_house_number"`
	PropertyTown        string `json:"property_town"`
	PropertyCounty      string `json:"property_county"`
	PropertyCountry     string `json:"property_country"`
	PropertyFullAddress string `json:"property_full_address"`

	PropertyDescription *string `json:"property_description,omitempty"`

	PropertyRating         decimal.Decimal `json:"property_rating"`
	PropertyRoomCapacity   int             `json:"property_room_capacity"`
	PropertyPeopleCapacity int             `json:"property_people_capacity"`

	PropertyRentAmount    *decimal.Decimal `json:"property_rent_amount,omitempty"`
	PropertyDepositAmount *decimal.Decimal `json:"property_deposit_amount,omitempty"`

	PropertyImageURLs []string  `json:"property_image_urls"`
	PropertyCreatedAt time.Time `json:"property_created_at"`
}

func FromPropertyModel(m *model.PropertyModel) PropertyResponse {
	resp := PropertyResponse{
		PropertyID:             m.PropertyID,
		PropertyOwnerID:        m.PropertyOwnerID,
		PropertySupervisorID:   m.PropertySupervisorID,
		PropertyStreet:         m.PropertyStreet,
		PropertyHouseNumber:    m.PropertyHouseNumber,
		PropertyTown:           m.PropertyTown,
		PropertyCounty:         m.PropertyCounty,
		PropertyCountry:        m.PropertyCountry,
		PropertyFullAddress:    m.FullAddress(),
		PropertyDescription:    m.PropertyDescription,
		PropertyRating:         m.PropertyRating,
		PropertyRoomCapacity:   m.PropertyRoomCapacity,
		PropertyPeopleCapacity: m.PropertyPeopleCapacity,
		PropertyImageURLs:      m.PropertyImageURLs,
		PropertyCreatedAt:      m.PropertyCreatedAt,
	}
	if m.PropertyRentAmount.Valid {
		resp.PropertyRentAmount = &m.PropertyRentAmount.Decimal
	}
	if m.PropertyDepositAmount.Valid {
		resp.PropertyDepositAmount = &m.PropertyDepositAmount.Decimal
	}
	if resp.PropertyImageURLs == nil {
		resp.PropertyImageURLs = []string{}
	}
	return resp
}

func FromPropertyModels(ms []model.PropertyModel) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromPropertyModel(&ms[i]))
	}
	return out
}
