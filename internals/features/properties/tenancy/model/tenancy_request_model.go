package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenancyRequestStatus string

const (
	TenancyRequestPending  TenancyRequestStatus = "pending"
	TenancyRequestApproved TenancyRequestStatus = "approved"
	TenancyRequestRejected TenancyRequestStatus = "rejected"
)

// TenancyRequestModel represents the tenancy_requests table: a tenant asking
// to move into a property, answered by the owner.
type TenancyRequestModel struct {
	TenancyRequestID uuid.UUID `gorm:"column:tenancy_request_id;type:uuid;default:gen_random_uuid();primaryKey" json:"tenancy_request_id"`

	TenancyRequestPropertyID uuid.UUID `gorm:"column:tenancy_request_property_id;type:uuid;not null;index:idx_tenancy_requests_property" json:"tenancy_request_property_id"`
	TenancyRequestTenantID   uuid.UUID `gorm:"column:tenancy_request_tenant_id;type:uuid;not null;index:idx_tenancy_requests_tenant" json:"tenancy_request_tenant_id"`
	TenancyRequestOwnerID    uuid.UUID `gorm:"column:tenancy_request_owner_id;type:uuid;not null" json:"tenancy_request_owner_id"`

	TenancyRequestStatus  TenancyRequestStatus `gorm:"column:tenancy_request_status;type:varchar(20);not null;default:'pending'" json:"tenancy_request_status"`
	TenancyRequestMessage *string              `gorm:"column:tenancy_request_message;type:text" json:"tenancy_request_message,omitempty"`

	TenancyRequestCreatedAt time.Time  `gorm:"column:tenancy_request_created_at;autoCreateTime" json:"tenancy_request_created_at"`
	TenancyRequestUpdatedAt *time.Time `gorm:"column:tenancy_request_updated_at;autoUpdateTime" json:"tenancy_request_updated_at,omitempty"`
}

func (TenancyRequestModel) TableName() string { return "tenancy_requests" }

func (r *TenancyRequestModel) BeforeCreate(tx *gorm.DB) error {
	if r.TenancyRequestID == uuid.Nil {
		r.TenancyRequestID = uuid.New()
	}
	if r.TenancyRequestStatus == "" {
		r.TenancyRequestStatus = TenancyRequestPending
	}
	return nil
}
