package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/nlekkerman/roomie/internals/features/users/user/model"
)

// =============================
// Request DTOs
// =============================

type UpdateUserRequest struct {
	UserName  *string `json:"user_name" validate:"omitempty,min=3,max=50"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
}

func (r *UpdateUserRequest) ApplyToModel(m *model.UserModel) {
	if r.UserName != nil {
		m.UserName = *r.UserName
	}
	if r.FirstName != nil {
		m.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		m.LastName = *r.LastName
	}
}

type UpdateUserProfileRequest struct {
	UserProfileBio   *string    `json:"user_profile_bio"`
	UserProfileDOB   *time.Time `json:"user_profile_date_of_birth"`
	UserProfilePhone *string    `json:"user_profile_phone_number" validate:"omitempty,max=30"`
}

func (r *UpdateUserProfileRequest) ApplyToModel(m *model.UserProfileModel) {
	if r.UserProfileBio != nil {
		m.UserProfileBio = r.UserProfileBio
	}
	if r.UserProfileDOB != nil {
		m.UserProfileDOB = r.UserProfileDOB
	}
	if r.UserProfilePhone != nil {
		m.UserProfilePhone = r.UserProfilePhone
	}
}

// =============================
// Response DTOs
// =============================

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUserModel(m *model.UserModel) UserResponse {
	return UserResponse{
		ID:        m.ID,
		UserName:  m.UserName,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Role:      m.Role,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

type UserProfileResponse struct {
	UserProfileID          uuid.UUID  `json:"user_profile_id"`
	UserProfileUserID      uuid.UUID  `json:"user_profile_user_id"`
	UserProfileBio         *string    `json:"user_profile_bio,omitempty"`
	UserProfileDOB         *time.Time `json:"user_profile_date_of_birth,omitempty"`
	UserProfilePhone       *string    `json:"user_profile_phone_number,omitempty"`
	UserProfileRoomieScore int        `json:"user_profile_roomie_score"`
	UserProfilePictureURL  *string    `json:"user_profile_picture_url,omitempty"`
}

func FromUserProfileModel(m *model.UserProfileModel) UserProfileResponse {
	return UserProfileResponse{
		UserProfileID:          m.UserProfileID,
		UserProfileUserID:      m.UserProfileUserID,
		UserProfileBio:         m.UserProfileBio,
		UserProfileDOB:         m.UserProfileDOB,
		UserProfilePhone:       m.UserProfilePhone,
		UserProfileRoomieScore: m.UserProfileRoomieScore,
		UserProfilePictureURL:  m.UserProfilePictureURL,
	}
}

// ResidenceResponse is one residency interval with the property's address
// resolved, as shown on the account page.
type ResidenceResponse struct {
	PropertyID uuid.UUID  `json:"property_id"`
	Address    string     `json:"address"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// MeResponse bundles the account row with its profile, the address the user
// currently lives at and the closed intervals before it, the way the
// frontend consumes /users/me.
type MeResponse struct {
	User             UserResponse         `json:"user"`
	Profile          *UserProfileResponse `json:"profile,omitempty"`
	CurrentResidence *ResidenceResponse   `json:"current_residence,omitempty"`
	ResidenceHistory []ResidenceResponse  `json:"residence_history"`
}
