package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/nlekkerman/roomie/internals/features/properties/tenancy/model"
)

// =============================
// Request DTOs
// =============================

type CreateTenancyRequestRequest struct {
	TenancyRequestPropertyID uuid.UUID `json:"tenancy_request_property_id" validate:"required"`
	TenancyRequestMessage    *string   `json:"tenancy_request_message"`
}

type ResolveTenancyRequestRequest struct {
	TenancyRequestStatus string `json:"tenancy_request_status" validate:"required,oneof=approved rejected"`
}

type MoveOutRequest struct {
	TenantID uuid.UUID  `json:"tenant_id" validate:"required"`
	EndDate  *time.Time `json:"end_date"`
}

// =============================
// Response DTOs
// =============================

type TenancyRequestResponse struct {
	TenancyRequestID         uuid.UUID  `json:"tenancy_request_id"`
	TenancyRequestPropertyID uuid.UUID  `json:"tenancy_request_property_id"`
	TenancyRequestTenantID   uuid.UUID  `json:"tenancy_request_tenant_id"`
	TenancyRequestOwnerID    uuid.UUID  `json:"tenancy_request_owner_id"`
	TenancyRequestStatus     string     `json:"tenancy_request_status"`
	TenancyRequestMessage    *string    `json:"tenancy_request_message,omitempty"`
	TenancyRequestCreatedAt  time.Time  `json:"tenancy_request_created_at"`
	TenancyRequestUpdatedAt  *time.Time `json:"tenancy_request_updated_at,omitempty"`
}

func FromTenancyRequestModel(m *model.TenancyRequestModel) TenancyRequestResponse {
	return TenancyRequestResponse{
		TenancyRequestID:         m.TenancyRequestID,
		TenancyRequestPropertyID: m.TenancyRequestPropertyID,
		TenancyRequestTenantID:   m.TenancyRequestTenantID,
		TenancyRequestOwnerID:    m.TenancyRequestOwnerID,
		TenancyRequestStatus:     string(m.TenancyRequestStatus),
		TenancyRequestMessage:    m.TenancyRequestMessage,
		TenancyRequestCreatedAt:  m.TenancyRequestCreatedAt,
		TenancyRequestUpdatedAt:  m.TenancyRequestUpdatedAt,
	}
}

func FromTenancyRequestModels(ms []model.TenancyRequestModel) []TenancyRequestResponse {
	out := make([]TenancyRequestResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromTenancyRequestModel(&ms[i]))
	}
	return out
}

type PropertyTenantRecordResponse struct {
	PropertyTenantRecordID         uuid.UUID  `json:"property_tenant_record_id"`
	PropertyTenantRecordPropertyID uuid.UUID  `json:"property_tenant_record_property_id"`
	PropertyTenantRecordTenantID   uuid.UUID  `json:"property_tenant_record_tenant_id"`
	PropertyTenantRecordStartDate  time.Time  `json:"property_tenant_record_start_date"`
	PropertyTenantRecordEndDate    *time.Time `json:"property_tenant_record_end_date,omitempty"`
	Active                         bool       `json:"active"`
}

func FromPropertyTenantRecordModel(m *model.PropertyTenantRecordModel) PropertyTenantRecordResponse {
	return PropertyTenantRecordResponse{
		PropertyTenantRecordID:         m.PropertyTenantRecordID,
		PropertyTenantRecordPropertyID: m.PropertyTenantRecordPropertyID,
		PropertyTenantRecordTenantID:   m.PropertyTenantRecordTenantID,
		PropertyTenantRecordStartDate:  m.PropertyTenantRecordStartDate,
		PropertyTenantRecordEndDate:    m.PropertyTenantRecordEndDate,
		Active:                         m.IsActive(),
	}
}

func FromPropertyTenantRecordModels(ms []model.PropertyTenantRecordModel) []PropertyTenantRecordResponse {
	out := make([]PropertyTenantRecordResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromPropertyTenantRecordModel(&ms[i]))
	}
	return out
}
