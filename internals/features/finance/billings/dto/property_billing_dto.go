package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nlekkerman/roomie/internals/features/finance/billings/model"
	"github.com/nlekkerman/roomie/internals/features/finance/billings/service"
)

// =============================
// Request DTOs
// =============================

type CreatePropertyBillingRequest struct {
	PropertyBillingPropertyID uuid.UUID `json:"property_billing_property_id" validate:"required"`
	PropertyBillingCategory   string    `json:"property_billing_category" validate:"required"`
	// Optional for rent billings, which default to the property's rent amount.
	PropertyBillingAmount      *decimal.Decimal `json:"property_billing_amount"`
	PropertyBillingDate        *time.Time       `json:"property_billing_date"`
	PropertyBillingDescription string           `json:"property_billing_description" validate:"max=255"`
	PropertyBillingDueDate     *time.Time       `json:"property_billing_due_date"`
}

func (r *CreatePropertyBillingRequest) ToModel() *model.PropertyBillingModel {
	m := &model.PropertyBillingModel{
		PropertyBillingPropertyID:  r.PropertyBillingPropertyID,
		PropertyBillingCategory:    model.BillingCategory(r.PropertyBillingCategory),
		PropertyBillingDescription: r.PropertyBillingDescription,
		PropertyBillingDueDate:     r.PropertyBillingDueDate,
	}
	if r.PropertyBillingAmount != nil {
		m.PropertyBillingAmount = *r.PropertyBillingAmount
	}
	if r.PropertyBillingDate != nil {
		m.PropertyBillingDate = *r.PropertyBillingDate
	}
	return m
}

type UpdatePropertyBillingRequest struct {
	PropertyBillingCategory    *string          `json:"property_billing_category"`
	PropertyBillingAmount      *decimal.Decimal `json:"property_billing_amount"`
	PropertyBillingDate        *time.Time       `json:"property_billing_date"`
	PropertyBillingDescription *string          `json:"property_billing_description" validate:"omitempty,max=255"`
	PropertyBillingDueDate     *time.Time       `json:"property_billing_due_date"`
}

// ApplyToModel copies only the fields the caller actually sent.
func (r *UpdatePropertyBillingRequest) ApplyToModel(m *model.PropertyBillingModel) {
	if r.PropertyBillingCategory != nil {
		m.PropertyBillingCategory = model.BillingCategory(*r.PropertyBillingCategory)
	}
	if r.PropertyBillingAmount != nil {
		m.PropertyBillingAmount = *r.PropertyBillingAmount
	}
	if r.PropertyBillingDate != nil {
		m.PropertyBillingDate = *r.PropertyBillingDate
	}
	if r.PropertyBillingDescription != nil {
		m.PropertyBillingDescription = *r.PropertyBillingDescription
	}
	if r.PropertyBillingDueDate != nil {
		m.PropertyBillingDueDate = r.PropertyBillingDueDate
	}
}

// =============================
// Response DTOs
// =============================

type PropertyBillingResponse struct {
	PropertyBillingID            uuid.UUID       `json:"property_billing_id"`
	PropertyBillingPropertyID    uuid.UUID       `json:"property_billing_property_id"`
	PropertyBillingCategory      string          `json:"property_billing_category"`
	PropertyBillingAmount        decimal.Decimal `json:"property_billing_amount"`
	PropertyBillingDate          time.Time       `json:"property_billing_date"`
	PropertyBillingDescription   string          `json:"property_billing_description"`
	PropertyBillingStatus        string          `json:"property_billing_status"`
	PropertyBillingDueDate       *time.Time      `json:"property_billing_due_date,omitempty"`
	PropertyBillingSplitSnapshot interface{}     `json:"property_billing_split_snapshot,omitempty"`
	PropertyBillingCreatedAt     time.Time       `json:"property_billing_created_at"`
}

func FromPropertyBillingModel(m *model.PropertyBillingModel) PropertyBillingResponse {
	resp := PropertyBillingResponse{
		PropertyBillingID:          m.PropertyBillingID,
		PropertyBillingPropertyID:  m.PropertyBillingPropertyID,
		PropertyBillingCategory:    string(m.PropertyBillingCategory),
		PropertyBillingAmount:      m.PropertyBillingAmount,
		PropertyBillingDate:        m.PropertyBillingDate,
		PropertyBillingDescription: m.PropertyBillingDescription,
		PropertyBillingStatus:      string(m.PropertyBillingStatus),
		PropertyBillingDueDate:     m.PropertyBillingDueDate,
		PropertyBillingCreatedAt:   m.PropertyBillingCreatedAt,
	}
	if len(m.PropertyBillingSplitSnapshot) > 0 {
		resp.PropertyBillingSplitSnapshot = m.PropertyBillingSplitSnapshot
	}
	return resp
}

func FromPropertyBillingModels(ms []model.PropertyBillingModel) []PropertyBillingResponse {
	out := make([]PropertyBillingResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromPropertyBillingModel(&ms[i]))
	}
	return out
}

// AllocationResponse wraps the billing plus the outcome of its fan-out.
type AllocationResponse struct {
	Billing    PropertyBillingResponse  `json:"billing"`
	Allocation service.AllocationResult `json:"allocation"`
}
