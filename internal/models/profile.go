package models

import "time"

// UploadResult maps each document slot to its public URL. Slots the user
// never staged are simply absent.
type UploadResult map[FileSlot]string

// Account is the authenticated identity returned by the gateway on signup.
type Account struct {
	ID       string                 `json:"id"`
	Email    string                 `json:"email"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// UserProfile is the generic profile row written for every registration.
type UserProfile struct {
	ID                string     `db:"id"`
	Email             string     `db:"email"`
	Role              string     `db:"role"`
	RoleID            int        `db:"role_id"`
	FullName          string     `db:"full_name"`
	FirstName         string     `db:"first_name"`
	LastName          string     `db:"last_name"`
	KTPAddress        *string    `db:"ktp_address"`
	KTPNumber         *string    `db:"ktp_number"`
	PhoneNumber       *string    `db:"phone_number"`
	FamilyPhoneNumber *string    `db:"family_phone_number"`
	LicenseNumber     *string    `db:"license_number"`
	LicenseExpiry     *string    `db:"license_expiry"`
	Religion          *string    `db:"religion"`
	Ethnicity         *string    `db:"ethnicity"`
	Education         *string    `db:"education"`
	SelfiePhotoURL    *string    `db:"selfie_photo_url"`
	FamilyCardURL     *string    `db:"family_card_url"`
	KTPURL            *string    `db:"ktp_url"`
	SIMURL            *string    `db:"sim_url"`
	SKCKURL           *string    `db:"skck_url"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

// StaffProfile is the staff-family profile row.
type StaffProfile struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	RoleID    int       `db:"role_id"`
	FullName  string    `db:"full_name"`
	CreatedAt time.Time `db:"created_at"`
}

// DriverProfile is the driver-family profile row. Vehicle columns are only
// populated for Driver Mitra registrations.
type DriverProfile struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	Email           string    `db:"email"`
	Role            string    `db:"role"`
	RoleID          int       `db:"role_id"`
	FullName        string    `db:"full_name"`
	LicenseNumber   *string   `db:"license_number"`
	LicenseExpiry   *string   `db:"license_expiry"`
	VehicleName     *string   `db:"vehicle_name"`
	VehicleType     *string   `db:"vehicle_type"`
	VehicleBrand    *string   `db:"vehicle_brand"`
	LicensePlate    *string   `db:"license_plate"`
	VehicleYear     *string   `db:"vehicle_year"`
	VehicleColor    *string   `db:"vehicle_color"`
	VehicleStatus   *string   `db:"vehicle_status"`
	VehiclePhotoURL *string   `db:"vehicle_photo_url"`
	CreatedAt       time.Time `db:"created_at"`
}

// SubmissionResult is what the pipeline hands back on success. Warnings carry
// profile-write failures that degraded, but did not abort, the registration.
type SubmissionResult struct {
	Account     Account      `json:"account"`
	Uploads     UploadResult `json:"uploads,omitempty"`
	RedirectURL string       `json:"redirect_url,omitempty"`
	ReceiptURL  string       `json:"receipt_url,omitempty"`
	Warnings    []string     `json:"warnings,omitempty"`
}
