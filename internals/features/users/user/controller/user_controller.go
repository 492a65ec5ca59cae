package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/google/uuid"

	"github.com/nlekkerman/roomie/internals/configs"
	propertyModel "github.com/nlekkerman/roomie/internals/features/properties/property/model"
	tenancyModel "github.com/nlekkerman/roomie/internals/features/properties/tenancy/model"
	"github.com/nlekkerman/roomie/internals/features/users/user/dto"
	"github.com/nlekkerman/roomie/internals/features/users/user/model"
	helper "github.com/nlekkerman/roomie/internals/helpers"
)

type UserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validate: validator.New()}
}

// =============================
// GET /api/u/users/me
// =============================
func (ctrl *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}

	resp := dto.MeResponse{User: dto.FromUserModel(&user)}

	var profile model.UserProfileModel
	err = ctrl.DB.First(&profile, "user_profile_user_id = ?", userID).Error
	if err == nil {
		p := dto.FromUserProfileModel(&profile)
		resp.Profile = &p
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}

	current, history, err := residencyOverview(ctrl.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load residency records")
	}
	resp.CurrentResidence = current
	resp.ResidenceHistory = history

	return helper.JsonOK(c, "User fetched", resp)
}

// residencyOverview resolves the user's residency intervals against the
// properties they point at: the open interval becomes the current address,
// closed intervals the history (newest first).
func residencyOverview(db *gorm.DB, userID uuid.UUID) (*dto.ResidenceResponse, []dto.ResidenceResponse, error) {
	var records []tenancyModel.PropertyTenantRecordModel
	err := db.
		Where("property_tenant_record_tenant_id = ?", userID).
		Order("property_tenant_record_start_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, nil, err
	}

	history := make([]dto.ResidenceResponse, 0, len(records))
	if len(records) == 0 {
		return nil, history, nil
	}

	propertyIDs := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		propertyIDs = append(propertyIDs, r.PropertyTenantRecordPropertyID)
	}

	var properties []propertyModel.PropertyModel
	if err := db.Where("property_id IN ?", propertyIDs).Find(&properties).Error; err != nil {
		return nil, nil, err
	}
	addresses := make(map[uuid.UUID]string, len(properties))
	for i := range properties {
		addresses[properties[i].PropertyID] = properties[i].FullAddress()
	}

	var current *dto.ResidenceResponse
	for _, r := range records {
		entry := dto.ResidenceResponse{
			PropertyID: r.PropertyTenantRecordPropertyID,
			Address:    addresses[r.PropertyTenantRecordPropertyID],
			StartDate:  r.PropertyTenantRecordStartDate,
			EndDate:    r.PropertyTenantRecordEndDate,
		}
		if r.IsActive() && current == nil {
			e := entry
			current = &e
			continue
		}
		history = append(history, entry)
	}
	return current, history, nil
}

// =============================
// PUT /api/u/users/me
// =============================
func (ctrl *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	req.ApplyToModel(&user)
	if err := ctrl.DB.Save(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "That user name is already taken")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	return helper.JsonUpdated(c, "User updated", dto.FromUserModel(&user))
}

// =============================
// PUT /api/u/users/me/profile
// =============================
// Creates the profile row on first use.
func (ctrl *UserController) UpdateMyProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}

	var req dto.UpdateUserProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	var profile model.UserProfileModel
	err = ctrl.DB.First(&profile, "user_profile_user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = model.UserProfileModel{UserProfileUserID: userID}
		req.ApplyToModel(&profile)
		if err := ctrl.DB.Create(&profile).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create profile")
		}
		return helper.JsonCreated(c, "Profile created", dto.FromUserProfileModel(&profile))
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}

	req.ApplyToModel(&profile)
	if err := ctrl.DB.Save(&profile).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	return helper.JsonUpdated(c, "Profile updated", dto.FromUserProfileModel(&profile))
}

// =============================
// POST /api/u/users/me/picture
// =============================
func (ctrl *UserController) UploadProfilePicture(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return errToJson(c, err)
	}

	file, err := c.FormFile("picture")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Expected a picture file")
	}

	data, err := helper.ConvertImageToWebP(file)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Failed to process picture")
	}

	uploadDir := configs.GetEnv("UPLOAD_DIR", "./uploads")
	url, err := helper.SaveImageLocally(uploadDir, "profiles", file.Filename, data)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store picture")
	}

	var profile model.UserProfileModel
	err = ctrl.DB.First(&profile, "user_profile_user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = model.UserProfileModel{UserProfileUserID: userID, UserProfilePictureURL: &url}
		if err := ctrl.DB.Create(&profile).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create profile")
		}
	} else if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	} else {
		profile.UserProfilePictureURL = &url
		if err := ctrl.DB.Model(&profile).
			Update("user_profile_picture_url", url).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save picture URL")
		}
	}

	return helper.JsonUpdated(c, "Profile picture updated", dto.FromUserProfileModel(&profile))
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

func errToJson(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}
