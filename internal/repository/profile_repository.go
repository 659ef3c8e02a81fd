package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/travelintrips/registration-api/internal/models"
)

// ProfileRepository writes the role-specific profile rows that accompany a
// created account.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// UpsertUser writes the generic profile row keyed by the account id. The row
// may already exist when a backend trigger ran first, hence the upsert.
func (r *ProfileRepository) UpsertUser(ctx context.Context, profile *models.UserProfile) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	const query = `INSERT INTO users (
		id, email, role, role_id, full_name, first_name, last_name,
		ktp_address, ktp_number, phone_number, family_phone_number,
		license_number, license_expiry, religion, ethnicity, education,
		selfie_photo_url, family_card_url, ktp_url, sim_url, skck_url,
		created_at, updated_at
	) VALUES (
		:id, :email, :role, :role_id, :full_name, :first_name, :last_name,
		:ktp_address, :ktp_number, :phone_number, :family_phone_number,
		:license_number, :license_expiry, :religion, :ethnicity, :education,
		:selfie_photo_url, :family_card_url, :ktp_url, :sim_url, :skck_url,
		:created_at, :updated_at
	) ON CONFLICT (id) DO UPDATE SET
		email = EXCLUDED.email,
		role = EXCLUDED.role,
		role_id = EXCLUDED.role_id,
		full_name = EXCLUDED.full_name,
		first_name = EXCLUDED.first_name,
		last_name = EXCLUDED.last_name,
		ktp_address = EXCLUDED.ktp_address,
		ktp_number = EXCLUDED.ktp_number,
		phone_number = EXCLUDED.phone_number,
		family_phone_number = EXCLUDED.family_phone_number,
		license_number = EXCLUDED.license_number,
		license_expiry = EXCLUDED.license_expiry,
		religion = EXCLUDED.religion,
		ethnicity = EXCLUDED.ethnicity,
		education = EXCLUDED.education,
		selfie_photo_url = EXCLUDED.selfie_photo_url,
		family_card_url = EXCLUDED.family_card_url,
		ktp_url = EXCLUDED.ktp_url,
		sim_url = EXCLUDED.sim_url,
		skck_url = EXCLUDED.skck_url,
		updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("upsert user profile: %w", err)
	}
	return nil
}

// InsertStaff writes a staff-family profile row.
func (r *ProfileRepository) InsertStaff(ctx context.Context, profile *models.StaffProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO staff (id, user_id, email, role, role_id, full_name, created_at)
		VALUES (:id, :user_id, :email, :role, :role_id, :full_name, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("insert staff profile: %w", err)
	}
	return nil
}

// InsertDriver writes a driver-family profile row.
func (r *ProfileRepository) InsertDriver(ctx context.Context, profile *models.DriverProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO drivers (
		id, user_id, email, role, role_id, full_name,
		license_number, license_expiry, vehicle_name, vehicle_type,
		vehicle_brand, license_plate, vehicle_year, vehicle_color,
		vehicle_status, vehicle_photo_url, created_at
	) VALUES (
		:id, :user_id, :email, :role, :role_id, :full_name,
		:license_number, :license_expiry, :vehicle_name, :vehicle_type,
		:vehicle_brand, :license_plate, :vehicle_year, :vehicle_color,
		:vehicle_status, :vehicle_photo_url, :created_at
	)`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("insert driver profile: %w", err)
	}
	return nil
}
