package controller

import (
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nlekkerman/roomie/internals/configs"
	"github.com/nlekkerman/roomie/internals/constants"
	"github.com/nlekkerman/roomie/internals/features/users/auth/dto"
	blacklistModel "github.com/nlekkerman/roomie/internals/features/users/auth/model"
	userDTO "github.com/nlekkerman/roomie/internals/features/users/user/dto"
	userModel "github.com/nlekkerman/roomie/internals/features/users/user/model"
	helper "github.com/nlekkerman/roomie/internals/helpers"
)

const accessTokenTTL = 24 * time.Hour

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

func (ctrl *AuthController) issueToken(user *userModel.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"role":      user.Role,
		"user_name": user.UserName,
		"exp":       time.Now().Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

// =============================
// POST /api/auth/register
// =============================
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserName:  req.UserName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  string(hashed),
		Role:      req.Role,
		IsActive:  true,
	}
	if user.Role == "" {
		user.Role = constants.RoleTenant
	}
	if err := user.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email or user name already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.JsonCreated(c, "Registration successful", userDTO.FromUserModel(&user))
}

// =============================
// POST /api/auth/login
// =============================
// Accepts email or user name as the identifier.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))

	var user userModel.UserModel
	err := ctrl.DB.
		Where("email = ? OR user_name = ?", identifier, req.Identifier).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := ctrl.issueToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	setAuthCookie(c, token)
	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		AccessToken: token,
		User:        userDTO.FromUserModel(&user),
	})
}

// =============================
// POST /api/auth/google
// =============================
// Verifies the Google ID token and signs the user in, creating the account
// on first login.
func (ctrl *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Failed to decode Google token")
	}

	email := strings.ToLower(claimSet.Email)
	googleID := claimSet.Sub

	var user userModel.UserModel
	err = ctrl.DB.
		Where("google_id = ? OR email = ?", googleID, email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = userModel.UserModel{
			UserName:  googleUserName(email),
			FirstName: claimSet.GivenName,
			LastName:  claimSet.FamilyName,
			Email:     email,
			Password:  uuid.NewString(), // unusable; Google accounts sign in via token only
			GoogleID:  &googleID,
			Role:      constants.RoleTenant,
			IsActive:  true,
		}
		if err := ctrl.DB.Create(&user).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
		}
	} else if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	} else if user.GoogleID == nil {
		// Existing email account logging in with Google for the first time.
		user.GoogleID = &googleID
		if err := ctrl.DB.Model(&user).Update("google_id", googleID).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to link Google account")
		}
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	token, err := ctrl.issueToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	setAuthCookie(c, token)
	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		AccessToken: token,
		User:        userDTO.FromUserModel(&user),
	})
}

// =============================
// POST /api/u/auth/logout
// =============================
// The token goes on the blacklist until its natural expiry, so a stolen
// copy cannot be replayed after logout.
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "No token to revoke")
	}

	expiredAt := time.Now().Add(accessTokenTTL)
	if claims, ok := parseClaimsUnverified(raw); ok {
		if exp, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(exp), 0)
		}
	}

	entry := blacklistModel.TokenBlacklistModel{
		TokenBlacklistToken:     raw,
		TokenBlacklistExpiredAt: expiredAt,
	}
	if err := ctrl.DB.Create(&entry).Error; err != nil && !isUniqueViolation(err) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke token")
	}

	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Logged out", nil)
}

func parseClaimsUnverified(raw string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, false
	}
	return claims, true
}

func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(accessTokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// googleUserName derives a unique-enough user name from the email local part.
func googleUserName(email string) string {
	local := email
	if i := strings.Index(email, "@"); i > 0 {
		local = email[:i]
	}
	return local + "-" + uuid.NewString()[:8]
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
