package model

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nlekkerman/roomie/internals/constants"
)

// Validator instance
var validate = validator.New()

// UserModel represents the users table
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName  string    `gorm:"size:50;unique;not null" json:"user_name" validate:"required,min=3,max=50"`
	FirstName string    `gorm:"size:100" json:"first_name"`
	LastName  string    `gorm:"size:100" json:"last_name"`
	Email     string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password  string    `gorm:"not null" json:"-" validate:"required,min=8"`
	GoogleID  *string   `gorm:"size:255;unique" json:"google_id,omitempty"`
	Role      string    `gorm:"type:varchar(20);not null;default:'tenant'" json:"role" validate:"omitempty,oneof=tenant property_owner house_supervisor"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SetDefaultValues fills defaults before validation
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = constants.RoleTenant
	}
}

// Validate checks the input against the rules defined above
func (u *UserModel) Validate() error {
	u.SetDefaultValues()
	if err := validate.Struct(u); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		switch fieldErr.Tag() {
		case "required":
			msgs = append(msgs, fieldErr.Field()+" is required.")
		case "email":
			msgs = append(msgs, "Invalid email format.")
		case "min":
			msgs = append(msgs, fieldErr.Field()+" must be at least "+fieldErr.Param()+" characters.")
		case "max":
			msgs = append(msgs, fieldErr.Field()+" must be under "+fieldErr.Param()+" characters.")
		case "oneof":
			msgs = append(msgs, fieldErr.Field()+" must be one of "+fieldErr.Param()+".")
		default:
			msgs = append(msgs, fieldErr.Field()+" has an invalid format.")
		}
	}
	return errors.New(strings.Join(msgs, " "))
}
