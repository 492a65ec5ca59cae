package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	billingService "github.com/nlekkerman/roomie/internals/features/finance/billings/service"
	"github.com/nlekkerman/roomie/internals/features/finance/cashflow/dto"
	"github.com/nlekkerman/roomie/internals/features/finance/cashflow/model"
	helper "github.com/nlekkerman/roomie/internals/helpers"
)

type UserCashFlowController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserCashFlowController(db *gorm.DB) *UserCashFlowController {
	return &UserCashFlowController{DB: db, Validate: validator.New()}
}

// loadOwnCashFlow fetches the entry and rejects callers touching someone
// else's money.
func (ctrl *UserCashFlowController) loadOwnCashFlow(c *fiber.Ctx, id uuid.UUID) (*model.UserCashFlowModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var cf model.UserCashFlowModel
	if err := ctrl.DB.First(&cf, "user_cash_flow_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Cash flow entry not found")
		}
		return nil, err
	}
	if cf.UserCashFlowUserID != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "This cash flow entry belongs to another user")
	}
	return &cf, nil
}

// =============================
// GET /api/u/cash-flows
// =============================
func (ctrl *UserCashFlowController) GetMyCashFlows(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	query := ctrl.DB.Model(&model.UserCashFlowModel{}).
		Where("user_cash_flow_user_id = ?", userID)

	if status := c.Query("status"); status != "" {
		query = query.Where("user_cash_flow_status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("user_cash_flow_category = ?", category)
	}
	if c.Query("linked") == "true" {
		query = query.Where("user_cash_flow_tenant_billing_id IS NOT NULL")
	} else if c.Query("linked") == "false" {
		query = query.Where("user_cash_flow_tenant_billing_id IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count cash flows")
	}

	var rows []model.UserCashFlowModel
	err = query.
		Order("user_cash_flow_date DESC, user_cash_flow_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch cash flows")
	}

	return helper.JsonList(c, "Cash flows fetched",
		dto.FromUserCashFlowModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =============================
// POST /api/u/cash-flows
// =============================
// Ad-hoc personal entries only. The tenant-billing link stays empty here;
// linked entries come out of the allocation run.
func (ctrl *UserCashFlowController) CreateCashFlow(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}

	var req dto.CreateUserCashFlowRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}
	if !req.UserCashFlowAmount.IsPositive() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Amount must be greater than zero")
	}

	cf := req.ToModel(userID)
	if err := ctrl.DB.Create(cf).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create cash flow entry")
	}

	return helper.JsonCreated(c, "Cash flow entry created", dto.FromUserCashFlowModel(cf))
}

// =============================
// PATCH /api/u/cash-flows/:id/pay
// =============================
// Marking an entry paid pushes the status up through its tenant billing to
// the property billing. Calling it again on an already-paid entry is a 200.
func (ctrl *UserCashFlowController) MarkCashFlowPaid(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid cash flow ID")
	}

	cf, err := ctrl.loadOwnCashFlow(c, id)
	if err != nil {
		return errToJson(c, err)
	}

	if cf.UserCashFlowStatus != model.CashFlowPaid {
		now := time.Now().UTC()
		cf.UserCashFlowStatus = model.CashFlowPaid
		cf.UserCashFlowPaidAt = &now
		if err := ctrl.DB.Model(cf).Updates(map[string]interface{}{
			"user_cash_flow_status":  model.CashFlowPaid,
			"user_cash_flow_paid_at": now,
		}).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark entry paid")
		}
	}

	if err := billingService.PropagateCashflowStatus(ctrl.DB, cf); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Entry marked paid but status propagation failed: "+err.Error())
	}

	return helper.JsonOK(c, "Cash flow entry marked paid", dto.FromUserCashFlowModel(cf))
}

// =============================
// PATCH /api/u/cash-flows/:id/unpay
// =============================
// Reverts a payment made by mistake. Propagation recomputes the parent
// billing, so a fully-paid billing drops back to pending.
func (ctrl *UserCashFlowController) MarkCashFlowPending(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid cash flow ID")
	}

	cf, err := ctrl.loadOwnCashFlow(c, id)
	if err != nil {
		return errToJson(c, err)
	}

	if cf.UserCashFlowStatus != model.CashFlowPending {
		cf.UserCashFlowStatus = model.CashFlowPending
		cf.UserCashFlowPaidAt = nil
		if err := ctrl.DB.Model(cf).Updates(map[string]interface{}{
			"user_cash_flow_status":  model.CashFlowPending,
			"user_cash_flow_paid_at": nil,
		}).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revert entry")
		}
	}

	if err := billingService.PropagateCashflowStatus(ctrl.DB, cf); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Entry reverted but status propagation failed: "+err.Error())
	}

	return helper.JsonOK(c, "Cash flow entry reverted to pending", dto.FromUserCashFlowModel(cf))
}

// =============================
// DELETE /api/u/cash-flows/:id
// =============================
// Only ad-hoc entries can be removed. Billing-backed entries carry a debt
// and must stay until the share itself is withdrawn.
func (ctrl *UserCashFlowController) DeleteCashFlow(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid cash flow ID")
	}

	cf, err := ctrl.loadOwnCashFlow(c, id)
	if err != nil {
		return errToJson(c, err)
	}
	if cf.IsLinked() {
		return helper.JsonError(c, fiber.StatusConflict, "Billing-backed entries cannot be deleted")
	}

	if err := ctrl.DB.Delete(cf).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete cash flow entry")
	}

	return helper.JsonDeleted(c, "Cash flow entry deleted", fiber.Map{"user_cash_flow_id": id})
}

func errToJson(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}
