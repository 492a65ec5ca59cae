package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nlekkerman/roomie/internals/constants"
	propertyModel "github.com/nlekkerman/roomie/internals/features/properties/property/model"
	"github.com/nlekkerman/roomie/internals/features/properties/tenancy/dto"
	"github.com/nlekkerman/roomie/internals/features/properties/tenancy/model"
	"github.com/nlekkerman/roomie/internals/features/properties/tenancy/service"
	helper "github.com/nlekkerman/roomie/internals/helpers"
)

type TenancyController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewTenancyController(db *gorm.DB) *TenancyController {
	return &TenancyController{DB: db, Validate: validator.New()}
}

// =============================
// POST /api/u/tenancy-requests
// =============================
// A tenant asks to move into a property. One open request per
// (property, tenant) pair at a time.
func (ctrl *TenancyController) CreateTenancyRequest(c *fiber.Ctx) error {
	tenantID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}
	if helper.GetRoleFromToken(c) != constants.RoleTenant {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorTenant("tenancy requests"))
	}

	var req dto.CreateTenancyRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	var property propertyModel.PropertyModel
	if err := ctrl.DB.First(&property, "property_id = ?", req.TenancyRequestPropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Property not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load property")
	}
	if property.PropertyOwnerID == tenantID {
		return helper.JsonError(c, fiber.StatusBadRequest, "You cannot request tenancy of your own property")
	}

	var open int64
	err = ctrl.DB.Model(&model.TenancyRequestModel{}).
		Where("tenancy_request_property_id = ? AND tenancy_request_tenant_id = ? AND tenancy_request_status = ?",
			property.PropertyID, tenantID, model.TenancyRequestPending).
		Count(&open).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing requests")
	}
	if open > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "You already have a pending request for this property")
	}

	request := &model.TenancyRequestModel{
		TenancyRequestPropertyID: property.PropertyID,
		TenancyRequestTenantID:   tenantID,
		TenancyRequestOwnerID:    property.PropertyOwnerID,
		TenancyRequestMessage:    req.TenancyRequestMessage,
	}
	if err := ctrl.DB.Create(request).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create tenancy request")
	}

	return helper.JsonCreated(c, "Tenancy request sent", dto.FromTenancyRequestModel(request))
}

// =============================
// GET /api/u/tenancy-requests (tenant's own)
// =============================
func (ctrl *TenancyController) GetMyTenancyRequests(c *fiber.Ctx) error {
	tenantID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}

	var requests []model.TenancyRequestModel
	err = ctrl.DB.
		Where("tenancy_request_tenant_id = ?", tenantID).
		Order("tenancy_request_created_at DESC").
		Find(&requests).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tenancy requests")
	}

	return helper.JsonOK(c, "Tenancy requests fetched", dto.FromTenancyRequestModels(requests))
}

// =============================
// GET /api/o/tenancy-requests (owner's inbox)
// =============================
func (ctrl *TenancyController) GetIncomingTenancyRequests(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}

	query := ctrl.DB.Where("tenancy_request_owner_id = ?", ownerID)
	if status := c.Query("status"); status != "" {
		query = query.Where("tenancy_request_status = ?", status)
	}

	var requests []model.TenancyRequestModel
	if err := query.Order("tenancy_request_created_at DESC").Find(&requests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tenancy requests")
	}

	return helper.JsonOK(c, "Tenancy requests fetched", dto.FromTenancyRequestModels(requests))
}

// =============================
// PATCH /api/o/tenancy-requests/:id
// =============================
// Approving a request opens a residency interval in the same transaction.
// From that moment the tenant is part of every future billing split.
func (ctrl *TenancyController) ResolveTenancyRequest(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	var req dto.ResolveTenancyRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	var request model.TenancyRequestModel
	if err := ctrl.DB.First(&request, "tenancy_request_id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tenancy request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load tenancy request")
	}
	if request.TenancyRequestOwnerID != ownerID {
		return helper.JsonError(c, fiber.StatusForbidden, "This request was sent to another owner")
	}
	if request.TenancyRequestStatus != model.TenancyRequestPending {
		return helper.JsonError(c, fiber.StatusConflict, "This request was already resolved")
	}

	newStatus := model.TenancyRequestStatus(req.TenancyRequestStatus)
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&request).
			Update("tenancy_request_status", newStatus).Error; err != nil {
			return err
		}
		if newStatus == model.TenancyRequestApproved {
			_, err := service.OpenTenancy(tx, request.TenancyRequestPropertyID, request.TenancyRequestTenantID, time.Now().UTC())
			return err
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve tenancy request")
	}

	request.TenancyRequestStatus = newStatus
	return helper.JsonUpdated(c, "Tenancy request resolved", dto.FromTenancyRequestModel(&request))
}

// =============================
// GET /api/o/properties/:propertyId/tenants
// =============================
func (ctrl *TenancyController) GetCurrentTenants(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}

	propertyID, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid property ID")
	}

	var property propertyModel.PropertyModel
	if err := ctrl.DB.First(&property, "property_id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Property not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load property")
	}
	isSupervisor := property.PropertySupervisorID != nil && *property.PropertySupervisorID == ownerID
	if property.PropertyOwnerID != ownerID && !isSupervisor {
		return helper.JsonError(c, fiber.StatusForbidden, "This property belongs to another owner")
	}

	records, err := service.CurrentTenantRecords(ctrl.DB, propertyID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tenant records")
	}

	return helper.JsonOK(c, "Current tenants fetched", dto.FromPropertyTenantRecordModels(records))
}

// =============================
// POST /api/o/properties/:propertyId/move-out
// =============================
// Ends the tenant's residency. Unpaid shares they already hold stay on
// their account; they just stop appearing in future splits.
func (ctrl *TenancyController) MoveOutTenant(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}

	propertyID, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid property ID")
	}

	var req dto.MoveOutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	var property propertyModel.PropertyModel
	if err := ctrl.DB.First(&property, "property_id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Property not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load property")
	}
	if property.PropertyOwnerID != ownerID {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorOwner("move-out for this property"))
	}

	end := time.Now().UTC()
	if req.EndDate != nil {
		end = *req.EndDate
	}

	closed, err := service.CloseTenancy(ctrl.DB, propertyID, req.TenantID, end)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to close tenancy")
	}
	if closed == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "No active tenancy for this tenant on this property")
	}

	return helper.JsonOK(c, "Tenant moved out", fiber.Map{
		"property_id": propertyID,
		"tenant_id":   req.TenantID,
		"end_date":    end,
	})
}

func errToJson(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}
