package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nlekkerman/roomie/internals/configs"
	"github.com/nlekkerman/roomie/internals/features/properties/property/dto"
	"github.com/nlekkerman/roomie/internals/features/properties/property/model"
	helper "github.com/nlekkerman/roomie/internals/helpers"
)

const maxPropertyImages = 10

type PropertyController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPropertyController(db *gorm.DB) *PropertyController {
	return &PropertyController{DB: db, Validate: validator.New()}
}

func (ctrl *PropertyController) loadOwnProperty(c *fiber.Ctx, id uuid.UUID) (*model.PropertyModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var property model.PropertyModel
	if err := ctrl.DB.First(&property, "property_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		return nil, err
	}
	if property.PropertyOwnerID != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "This property belongs to another owner")
	}
	return &property, nil
}

// =============================
// POST /api/o/properties
// =============================
func (ctrl *PropertyController) CreateProperty(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}

	var req dto.CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	property := req.ToModel(userID)
	if err := ctrl.DB.Create(property).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create property")
	}

	return helper.JsonCreated(c, "Property created", dto.FromPropertyModel(property))
}

// =============================
// GET /api/properties (public browse)
// =============================
func (ctrl *PropertyController) GetProperties(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	query := ctrl.DB.Model(&model.PropertyModel{})
	if town := c.Query("town"); town != "" {
		query = query.Where("property_town ILIKE ?", "%"+town+"%")
	}
	if county := c.Query("county"); county != "" {
		query = query.Where("property_county ILIKE ?", "%"+county+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count properties")
	}

	var properties []model.PropertyModel
	err := query.
		Order("property_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&properties).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch properties")
	}

	return helper.JsonList(c, "Properties fetched",
		dto.FromPropertyModels(properties),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =============================
// GET /api/properties/:id
// =============================
func (ctrl *PropertyController) GetPropertyByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid property ID")
	}

	var property model.PropertyModel
	if err := ctrl.DB.First(&property, "property_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Property not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load property")
	}

	return helper.JsonOK(c, "Property fetched", dto.FromPropertyModel(&property))
}

// =============================
// GET /api/o/properties (owner's own)
// =============================
func (ctrl *PropertyController) GetMyProperties(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}

	var properties []model.PropertyModel
	err = ctrl.DB.
		Where("property_owner_id = ? OR property_supervisor_id = ?", userID, userID).
		Order("property_created_at DESC").
		Find(&properties).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch properties")
	}

	return helper.JsonOK(c, "Properties fetched", dto.FromPropertyModels(properties))
}

// =============================
// PUT /api/o/properties/:id
// =============================
func (ctrl *PropertyController) UpdateProperty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid property ID")
	}

	property, err := ctrl.loadOwnProperty(c, id)
	if err != nil {
		return errToJson(c, err)
	}

	var req dto.UpdatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	req.ApplyToModel(property)
	if err := ctrl.DB.Save(property).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update property")
	}

	return helper.JsonUpdated(c, "Property updated", dto.FromPropertyModel(property))
}

// =============================
// DELETE /api/o/properties/:id
// =============================
func (ctrl *PropertyController) DeleteProperty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid property ID")
	}

	property, err := ctrl.loadOwnProperty(c, id)
	if err != nil {
		return errToJson(c, err)
	}

	if err := ctrl.DB.Delete(property).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete property")
	}

	return helper.JsonDeleted(c, "Property deleted", fiber.Map{"property_id": id})
}

// =============================
// POST /api/o/properties/:id/images
// =============================
// Accepts multipart uploads, converts each image to WebP and stores it
// under the local uploads directory.
func (ctrl *PropertyController) UploadPropertyImages(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid property ID")
	}

	property, err := ctrl.loadOwnProperty(c, id)
	if err != nil {
		return errToJson(c, err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Expected multipart form with images")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No images provided")
	}
	if len(property.PropertyImageURLs)+len(files) > maxPropertyImages {
		return helper.JsonError(c, fiber.StatusBadRequest, "A property can hold at most 10 images")
	}

	uploadDir := configs.GetEnv("UPLOAD_DIR", "./uploads")
	for _, file := range files {
		data, err := helper.ConvertImageToWebP(file)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Failed to process image "+file.Filename)
		}
		url, err := helper.SaveImageLocally(uploadDir, "properties", file.Filename, data)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store image "+file.Filename)
		}
		property.PropertyImageURLs = append(property.PropertyImageURLs, url)
	}

	if err := ctrl.DB.Model(property).
		Update("property_image_urls", property.PropertyImageURLs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save image URLs")
	}

	return helper.JsonUpdated(c, "Images uploaded", dto.FromPropertyModel(property))
}

func errToJson(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}
