package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfileModel represents the user_profiles table (the old roomie_user
// profile: bio, date of birth, picture, roomie score).
type UserProfileModel struct {
	UserProfileID     uuid.UUID  `gorm:"column:user_profile_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_profile_id"`
	UserProfileUserID uuid.UUID  `gorm:"column:user_profile_user_id;type:uuid;not null;uniqueIndex:uq_user_profiles_user" json:"user_profile_user_id"`
	UserProfileBio    *string    `gorm:"column:user_profile_bio;type:text" json:"user_profile_bio,omitempty"`
	UserProfileDOB    *time.Time `gorm:"column:user_profile_date_of_birth;type:date" json:"user_profile_date_of_birth,omitempty"`
	UserProfilePhone  *string    `gorm:"column:user_profile_phone_number;size:30" json:"user_profile_phone_number,omitempty"`

	// rating other roomies gave this user, defaults to 5
	UserProfileRoomieScore int `gorm:"column:user_profile_roomie_score;not null;default:5" json:"user_profile_roomie_score"`

	UserProfilePictureURL *string `gorm:"column:user_profile_picture_url;type:text" json:"user_profile_picture_url,omitempty"`

	UserProfileCreatedAt time.Time  `gorm:"column:user_profile_created_at;autoCreateTime" json:"user_profile_created_at"`
	UserProfileUpdatedAt *time.Time `gorm:"column:user_profile_updated_at;autoUpdateTime" json:"user_profile_updated_at,omitempty"`
}

func (UserProfileModel) TableName() string { return "user_profiles" }

func (p *UserProfileModel) BeforeCreate(tx *gorm.DB) error {
	if p.UserProfileID == uuid.Nil {
		p.UserProfileID = uuid.New()
	}
	if p.UserProfileRoomieScore == 0 {
		p.UserProfileRoomieScore = 5
	}
	return nil
}
