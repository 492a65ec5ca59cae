package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nlekkerman/roomie/internals/constants"
	"github.com/nlekkerman/roomie/internals/features/finance/billings/dto"
	"github.com/nlekkerman/roomie/internals/features/finance/billings/model"
	"github.com/nlekkerman/roomie/internals/features/finance/billings/service"
	propertyModel "github.com/nlekkerman/roomie/internals/features/properties/property/model"
	helper "github.com/nlekkerman/roomie/internals/helpers"
)

type PropertyBillingController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPropertyBillingController(db *gorm.DB) *PropertyBillingController {
	return &PropertyBillingController{DB: db, Validate: validator.New()}
}

// ensureManagesProperty loads the property and checks that the caller is its
// owner or its supervisor.
func (ctrl *PropertyBillingController) ensureManagesProperty(c *fiber.Ctx, propertyID uuid.UUID) (*propertyModel.PropertyModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var property propertyModel.PropertyModel
	if err := ctrl.DB.First(&property, "property_id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		return nil, err
	}

	if property.PropertyOwnerID == userID {
		return &property, nil
	}
	if property.PropertySupervisorID != nil && *property.PropertySupervisorID == userID {
		return &property, nil
	}
	return nil, fiber.NewError(fiber.StatusForbidden, constants.RoleErrorSupervisor("billings for this property"))
}

// =============================
// CREATE /api/o/property-billings
// =============================
// Creating a billing immediately fans it out to the property's current
// tenants in the same request.
func (ctrl *PropertyBillingController) CreatePropertyBilling(c *fiber.Ctx) error {
	var req dto.CreatePropertyBillingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	property, err := ctrl.ensureManagesProperty(c, req.PropertyBillingPropertyID)
	if err != nil {
		return errToJson(c, err)
	}

	billing := req.ToModel()
	if billing.PropertyBillingDate.IsZero() {
		billing.PropertyBillingDate = time.Now().UTC()
	}
	if err := resolveBillingAmount(billing, property); err != nil {
		return errToJson(c, err)
	}

	if err := ctrl.DB.Create(billing).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create billing")
	}

	result, err := service.AllocateBilling(ctrl.DB, billing)
	if err != nil {
		// The billing exists; report the failed fan-out without dropping it.
		return helper.JsonError(c, fiber.StatusInternalServerError, "Billing created but allocation failed: "+err.Error())
	}

	return helper.JsonCreated(c, "Billing created", dto.AllocationResponse{
		Billing:    dto.FromPropertyBillingModel(billing),
		Allocation: result,
	})
}

// =============================
// POST /api/o/property-billings/:id/allocate
// =============================
// Re-runs the fan-out. Safe to call repeatedly: tenants that already hold a
// share are skipped, so only tenants who moved in since the last run get one.
func (ctrl *PropertyBillingController) AllocatePropertyBilling(c *fiber.Ctx) error {
	billingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid billing ID")
	}

	var billing model.PropertyBillingModel
	if err := ctrl.DB.First(&billing, "property_billing_id = ?", billingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Billing not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load billing")
	}

	if _, err := ctrl.ensureManagesProperty(c, billing.PropertyBillingPropertyID); err != nil {
		return errToJson(c, err)
	}

	result, err := service.AllocateBilling(ctrl.DB, &billing)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Allocation failed: "+err.Error())
	}

	return helper.JsonOK(c, "Allocation finished", dto.AllocationResponse{
		Billing:    dto.FromPropertyBillingModel(&billing),
		Allocation: result,
	})
}

// =============================
// GET /api/o/properties/:propertyId/billings
// =============================
func (ctrl *PropertyBillingController) GetPropertyBillings(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid property ID")
	}

	if _, err := ctrl.ensureManagesProperty(c, propertyID); err != nil {
		return errToJson(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	query := ctrl.DB.Model(&model.PropertyBillingModel{}).
		Where("property_billing_property_id = ?", propertyID)

	if status := c.Query("status"); status != "" {
		query = query.Where("property_billing_status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("property_billing_category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count billings")
	}

	var billings []model.PropertyBillingModel
	err = query.
		Order("property_billing_date DESC, property_billing_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&billings).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch billings")
	}

	return helper.JsonList(c, "Billings fetched",
		dto.FromPropertyBillingModels(billings),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =============================
// GET /api/o/property-billings/:id
// =============================
// Returns the billing together with its tenant shares, so the owner sees
// who still owes at a glance.
func (ctrl *PropertyBillingController) GetPropertyBillingByID(c *fiber.Ctx) error {
	billingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid billing ID")
	}

	var billing model.PropertyBillingModel
	if err := ctrl.DB.First(&billing, "property_billing_id = ?", billingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Billing not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load billing")
	}

	if _, err := ctrl.ensureManagesProperty(c, billing.PropertyBillingPropertyID); err != nil {
		return errToJson(c, err)
	}

	var shares []model.TenantBillingModel
	if err := ctrl.DB.
		Where("tenant_billing_billing_id = ?", billingID).
		Order("tenant_billing_created_at ASC").
		Find(&shares).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load tenant billings")
	}

	return helper.JsonOK(c, "Billing fetched", fiber.Map{
		"billing":         dto.FromPropertyBillingModel(&billing),
		"tenant_billings": dto.FromTenantBillingModels(shares),
	})
}

// =============================
// PUT /api/o/property-billings/:id
// =============================
// Amount and category edits only touch the parent row. Shares already handed
// to tenants keep their amounts; rerun the allocation on a fresh billing when
// the split itself has to change.
func (ctrl *PropertyBillingController) UpdatePropertyBilling(c *fiber.Ctx) error {
	billingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid billing ID")
	}

	var billing model.PropertyBillingModel
	if err := ctrl.DB.First(&billing, "property_billing_id = ?", billingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Billing not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load billing")
	}

	if _, err := ctrl.ensureManagesProperty(c, billing.PropertyBillingPropertyID); err != nil {
		return errToJson(c, err)
	}

	var req dto.UpdatePropertyBillingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	req.ApplyToModel(&billing)
	if !model.ValidCategory(billing.PropertyBillingCategory) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown billing category "+string(billing.PropertyBillingCategory))
	}
	if err := ctrl.DB.Save(&billing).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update billing")
	}

	return helper.JsonUpdated(c, "Billing updated", dto.FromPropertyBillingModel(&billing))
}

// =============================
// DELETE /api/o/property-billings/:id
// =============================
func (ctrl *PropertyBillingController) DeletePropertyBilling(c *fiber.Ctx) error {
	billingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid billing ID")
	}

	var billing model.PropertyBillingModel
	if err := ctrl.DB.First(&billing, "property_billing_id = ?", billingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Billing not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load billing")
	}

	if _, err := ctrl.ensureManagesProperty(c, billing.PropertyBillingPropertyID); err != nil {
		return errToJson(c, err)
	}

	if err := ctrl.DB.Delete(&billing).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete billing")
	}

	return helper.JsonDeleted(c, "Billing deleted", fiber.Map{"property_billing_id": billingID})
}

// =============================
// GET /api/u/tenant-billings
// =============================
// A tenant's own shares across every property they live (or lived) in.
func (ctrl *PropertyBillingController) GetMyTenantBillings(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	query := ctrl.DB.Model(&model.TenantBillingModel{}).
		Where("tenant_billing_tenant_id = ?", userID)

	if status := c.Query("status"); status != "" {
		query = query.Where("tenant_billing_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count tenant billings")
	}

	var rows []model.TenantBillingModel
	err = query.
		Order("tenant_billing_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tenant billings")
	}

	return helper.JsonList(c, "Tenant billings fetched",
		dto.FromTenantBillingModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// resolveBillingAmount validates the category and settles the amount. Rent
// billings may omit the amount and inherit the property's rent amount, the
// way the monthly rent run works.
func resolveBillingAmount(billing *model.PropertyBillingModel, property *propertyModel.PropertyModel) error {
	if !model.ValidCategory(billing.PropertyBillingCategory) {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown billing category "+string(billing.PropertyBillingCategory))
	}

	if billing.PropertyBillingAmount.IsZero() && billing.PropertyBillingCategory == model.CategoryRent {
		if !property.PropertyRentAmount.Valid || !property.PropertyRentAmount.Decimal.IsPositive() {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Property has no rent amount to default from")
		}
		billing.PropertyBillingAmount = property.PropertyRentAmount.Decimal
	}

	if !billing.PropertyBillingAmount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "Billing amount must be greater than zero")
	}
	return nil
}

// errToJson turns fiber errors from shared helpers into the standard envelope.
func errToJson(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}
