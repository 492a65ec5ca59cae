package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nlekkerman/roomie/internals/features/finance/cashflow/model"
)

// =============================
// Request DTOs
// =============================

// CreateUserCashFlowRequest covers ad-hoc entries only. Billing-backed
// entries are created by the allocation run, never over the API.
type CreateUserCashFlowRequest struct {
	UserCashFlowAmount      decimal.Decimal `json:"user_cash_flow_amount" validate:"required"`
	UserCashFlowDate        *time.Time      `json:"user_cash_flow_date"`
	UserCashFlowDescription string          `json:"user_cash_flow_description" validate:"max=255"`
	UserCashFlowCategory    string          `json:"user_cash_flow_category" validate:"required,max=20"`
	UserCashFlowDeadline    *time.Time      `json:"user_cash_flow_deadline"`
}

func (r *CreateUserCashFlowRequest) ToModel(userID uuid.UUID) *model.UserCashFlowModel {
	m := &model.UserCashFlowModel{
		UserCashFlowUserID:      userID,
		UserCashFlowAmount:      r.UserCashFlowAmount,
		UserCashFlowDescription: r.UserCashFlowDescription,
		UserCashFlowCategory:    r.UserCashFlowCategory,
		UserCashFlowDeadline:    r.UserCashFlowDeadline,
	}
	if r.UserCashFlowDate != nil {
		m.UserCashFlowDate = *r.UserCashFlowDate
	}
	return m
}

// =============================
// Response DTOs
// =============================

type UserCashFlowResponse struct {
	UserCashFlowID              uuid.UUID       `json:"user_cash_flow_id"`
	UserCashFlowUserID          uuid.UUID       `json:"user_cash_flow_user_id"`
	UserCashFlowTenantBillingID *uuid.UUID      `json:"user_cash_flow_tenant_billing_id,omitempty"`
	UserCashFlowAmount          decimal.Decimal `json:"user_cash_flow_amount"`
	UserCashFlowDate            time.Time       `json:"user_cash_flow_date"`
	UserCashFlowDescription     string          `json:"user_cash_flow_description"`
	UserCashFlowCategory        string          `json:"user_cash_flow_category"`
	UserCashFlowStatus          string          `json:"user_cash_flow_status"`
	UserCashFlowDeadline        *time.Time      `json:"user_cash_flow_deadline,omitempty"`
	UserCashFlowPaidAt          *time.Time      `json:"user_cash_flow_paid_at,omitempty"`
	UserCashFlowCreatedAt       time.Time       `json:"user_cash_flow_created_at"`
}

func FromUserCashFlowModel(m *model.UserCashFlowModel) UserCashFlowResponse {
	return UserCashFlowResponse{
		UserCashFlowID:              m.UserCashFlowID,
		UserCashFlowUserID:          m.UserCashFlowUserID,
		UserCashFlowTenantBillingID: m.UserCashFlowTenantBillingID,
		UserCashFlowAmount:          m.UserCashFlowAmount,
		UserCashFlowDate:            m.UserCashFlowDate,
		UserCashFlowDescription:     m.UserCashFlowDescription,
		UserCashFlowCategory:        m.UserCashFlowCategory,
		UserCashFlowStatus:          string(m.UserCashFlowStatus),
		UserCashFlowDeadline:        m.UserCashFlowDeadline,
		UserCashFlowPaidAt:          m.UserCashFlowPaidAt,
		UserCashFlowCreatedAt:       m.UserCashFlowCreatedAt,
	}
}

func FromUserCashFlowModels(ms []model.UserCashFlowModel) []UserCashFlowResponse {
	out := make([]UserCashFlowResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromUserCashFlowModel(&ms[i]))
	}
	return out
}
