package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nlekkerman/roomie/internals/features/finance/billings/model"
)

type TenantBillingResponse struct {
	TenantBillingID        uuid.UUID       `json:"tenant_billing_id"`
	TenantBillingBillingID uuid.UUID       `json:"tenant_billing_billing_id"`
	TenantBillingTenantID  uuid.UUID       `json:"tenant_billing_tenant_id"`
	TenantBillingAmount    decimal.Decimal `json:"tenant_billing_amount"`
	TenantBillingCategory  string          `json:"tenant_billing_category"`
	TenantBillingStatus    string          `json:"tenant_billing_status"`
	TenantBillingDeadline  *time.Time      `json:"tenant_billing_deadline,omitempty"`
	TenantBillingPaidAt    *time.Time      `json:"tenant_billing_paid_at,omitempty"`
	TenantBillingCreatedAt time.Time       `json:"tenant_billing_created_at"`
}

func FromTenantBillingModel(m *model.TenantBillingModel) TenantBillingResponse {
	return TenantBillingResponse{
		TenantBillingID:        m.TenantBillingID,
		TenantBillingBillingID: m.TenantBillingBillingID,
		TenantBillingTenantID:  m.TenantBillingTenantID,
		TenantBillingAmount:    m.TenantBillingAmount,
		TenantBillingCategory:  string(m.TenantBillingCategory),
		TenantBillingStatus:    string(m.TenantBillingStatus),
		TenantBillingDeadline:  m.TenantBillingDeadline,
		TenantBillingPaidAt:    m.TenantBillingPaidAt,
		TenantBillingCreatedAt: m.TenantBillingCreatedAt,
	}
}

func FromTenantBillingModels(ms []model.TenantBillingModel) []TenantBillingResponse {
	out := make([]TenantBillingResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromTenantBillingModel(&ms[i]))
	}
	return out
}
