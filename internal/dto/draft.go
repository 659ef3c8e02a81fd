package dto

import "github.com/travelintrips/registration-api/internal/models"

// SetFieldsRequest patches draft fields. Only non-nil values are applied, so
// clients can update a single input at a time as the user types.
type SetFieldsRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`

	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	FullName   *string `json:"full_name"`
	KTPAddress *string `json:"ktp_address"`
	KTPNumber  *string `json:"ktp_number"`
	Religion   *string `json:"religion"`
	Ethnicity  *string `json:"ethnicity"`
	Education  *string `json:"education"`

	PhoneNumber       *string `json:"phone_number"`
	FamilyPhoneNumber *string `json:"family_phone_number"`
	LicenseNumber     *string `json:"license_number"`
	LicenseExpiry     *string `json:"license_expiry"`

	VehicleName   *string `json:"vehicle_name"`
	VehicleType   *string `json:"vehicle_type"`
	VehicleBrand  *string `json:"vehicle_brand"`
	LicensePlate  *string `json:"license_plate"`
	VehicleYear   *string `json:"vehicle_year"`
	VehicleColor  *string `json:"vehicle_color"`
	VehicleStatus *string `json:"vehicle_status"`
}

// SetRoleRequest selects the registration role.
type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// FieldError flags a single invalid field for inline display.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// StagedFileInfo describes a staged document without its bytes.
type StagedFileInfo struct {
	Slot        models.FileSlot `json:"slot"`
	Name        string          `json:"name"`
	ContentType string          `json:"content_type"`
	Size        int64           `json:"size"`
}

// DraftState is the wizard view of a draft returned to clients. The password
// is never echoed back.
type DraftState struct {
	ID          string             `json:"id"`
	Stage       models.Stage       `json:"stage"`
	Sequence    []models.Stage     `json:"sequence"`
	Fields      models.DraftFields `json:"fields"`
	StagedFiles []StagedFileInfo   `json:"staged_files"`
	Errors      []FieldError       `json:"errors,omitempty"`
}

// SetLocaleRequest persists the client's locale choice.
type SetLocaleRequest struct {
	Locale string `json:"locale" binding:"required"`
}
