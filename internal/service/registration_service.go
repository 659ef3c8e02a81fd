package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/travelintrips/registration-api/internal/models"
	appErrors "github.com/travelintrips/registration-api/pkg/errors"
	"github.com/travelintrips/registration-api/pkg/export"
	"github.com/travelintrips/registration-api/pkg/storage"
)

type registrationGateway interface {
	CreateAccount(ctx context.Context, email, password string, metadata map[string]interface{}) (*models.Account, error)
}

type profileWriter interface {
	UpsertUser(ctx context.Context, profile *models.UserProfile) error
	InsertStaff(ctx context.Context, profile *models.StaffProfile) error
	InsertDriver(ctx context.Context, profile *models.DriverProfile) error
}

// RegistrationConfig tunes the submission pipeline.
type RegistrationConfig struct {
	Bucket          string
	ReceiptEnabled  bool
	DriverSignInURL string
	StaffSignInURL  string
}

// RegistrationService executes the submission pipeline: upload staged
// documents, create the account, then write the role-specific profile rows.
type RegistrationService struct {
	drafts   draftStore
	wizard   *WizardService
	gateway  registrationGateway
	profiles profileWriter
	store    storage.ObjectStore
	receipts *export.ReceiptRenderer
	logger   *zap.Logger
	config   RegistrationConfig
}

// NewRegistrationService constructs a RegistrationService instance.
func NewRegistrationService(
	drafts draftStore,
	wizard *WizardService,
	gw registrationGateway,
	profiles profileWriter,
	store storage.ObjectStore,
	logger *zap.Logger,
	config RegistrationConfig,
) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &RegistrationService{
		drafts:   drafts,
		wizard:   wizard,
		gateway:  gw,
		profiles: profiles,
		store:    store,
		logger:   logger,
		config:   config,
	}
	if config.ReceiptEnabled {
		svc.receipts = export.NewReceiptRenderer()
	}
	return svc
}

// Submit runs the pipeline for the given draft. Uploads precede account
// creation; profile writes follow it. Profile-write failures degrade the
// success into warnings instead of being silently swallowed.
func (s *RegistrationService) Submit(ctx context.Context, draftID string) (*models.SubmissionResult, error) {
	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if draft.Stage != models.StageDocuments {
		return nil, appErrors.Clone(appErrors.ErrStageBlocked, "submission is only allowed from the documents stage")
	}
	if fieldErrs := s.wizard.validateAll(draft); len(fieldErrs) > 0 {
		return nil, appErrors.Clone(appErrors.ErrStageBlocked, fieldErrs[0].Message)
	}

	result, err := s.run(ctx, draft)
	if err != nil {
		return nil, err
	}

	// Successful submission resets the draft to its initial empty state.
	draft.Reset()
	if err := s.drafts.Save(ctx, draft); err != nil {
		s.logger.Warn("failed to reset draft after submission", zap.String("draft_id", draft.ID), zap.Error(err))
	}

	return result, nil
}

func (s *RegistrationService) run(ctx context.Context, draft *models.RegistrationDraft) (*models.SubmissionResult, error) {
	fields := draft.Fields

	// Step 1: required-field presence, checked before any side effect.
	if fields.Email == "" || fields.Password == "" || fields.Role == "" {
		return nil, appErrors.ErrMissingRequiredField
	}

	role, ok := models.LookupRole(fields.Role)
	if !ok {
		// The original silently defaulted unknown roles to Customer; this
		// implementation rejects them instead.
		return nil, appErrors.Clone(appErrors.ErrUnknownRole, fmt.Sprintf("role %q is not recognized", fields.Role))
	}

	// Step 2: sequential uploads, one slot at a time, so a failure is
	// attributable to exactly one document.
	uploads := make(models.UploadResult, len(draft.Files))
	for _, slot := range draft.StagedSlots() {
		file := draft.Files[slot]
		objectPath := fmt.Sprintf("%s/%s", slot.Folder(), randomFileName(file.Name))
		url, err := s.store.Upload(ctx, s.config.Bucket, objectPath, file.ContentType, file.Data)
		if err != nil {
			s.logger.Error("document upload failed",
				zap.String("draft_id", draft.ID),
				zap.String("slot", string(slot)),
				zap.Error(err),
			)
			return nil, appErrors.Wrap(err, appErrors.ErrUploadFailure.Code, appErrors.ErrUploadFailure.Status,
				fmt.Sprintf("failed to upload %s: %v", slot, err))
		}
		uploads[slot] = url
	}

	// Steps 3-4: metadata bag with every non-empty field plus upload URLs.
	metadata := buildSignupMetadata(fields, role, uploads)

	// Step 5: account creation; raw gateway messages are classified, never
	// surfaced verbatim.
	account, err := s.gateway.CreateAccount(ctx, fields.Email, fields.Password, metadata)
	if err != nil {
		classified := classifyAuthError(err)
		s.logger.Error("account creation failed",
			zap.String("draft_id", draft.ID),
			zap.String("classification", classified.Code),
			zap.Error(err),
		)
		return nil, classified
	}

	result := &models.SubmissionResult{
		Account:     *account,
		Uploads:     uploads,
		RedirectURL: s.redirectFor(role),
	}

	// Steps 6-7: profile rows. Failures here do not roll back the account;
	// they surface as warnings on the result.
	if err := s.profiles.UpsertUser(ctx, buildUserProfile(account.ID, fields, role, uploads)); err != nil {
		s.logger.Error("user profile upsert failed", zap.String("account_id", account.ID), zap.Error(err))
		result.Warnings = append(result.Warnings, "profile row could not be saved")
	}

	switch role.Family {
	case models.FamilyStaff:
		if err := s.profiles.InsertStaff(ctx, buildStaffProfile(account.ID, fields, role)); err != nil {
			s.logger.Error("staff profile insert failed", zap.String("account_id", account.ID), zap.Error(err))
			result.Warnings = append(result.Warnings, "staff profile row could not be saved")
		}
	case models.FamilyDriver:
		if err := s.profiles.InsertDriver(ctx, buildDriverProfile(account.ID, fields, role, uploads)); err != nil {
			s.logger.Error("driver profile insert failed", zap.String("account_id", account.ID), zap.Error(err))
			result.Warnings = append(result.Warnings, "driver profile row could not be saved")
		}
	}

	if s.receipts != nil {
		s.attachReceipt(ctx, result, fields, role)
	}

	return result, nil
}

// attachReceipt renders and stores the registration receipt. Best effort: a
// failure becomes a warning, never an error.
func (s *RegistrationService) attachReceipt(ctx context.Context, result *models.SubmissionResult, fields models.DraftFields, role models.Role) {
	lines := []export.ReceiptLine{
		{Label: "Name", Value: fields.DisplayName()},
		{Label: "Email", Value: fields.Email},
		{Label: "Role", Value: role.Name},
		{Label: "Registered", Value: time.Now().UTC().Format(time.RFC3339)},
	}
	if fields.PhoneNumber != "" {
		lines = append(lines, export.ReceiptLine{Label: "Phone", Value: fields.PhoneNumber})
	}
	if role.Name == models.RoleDriverMitra && fields.VehicleComplete() {
		lines = append(lines,
			export.ReceiptLine{Label: "Vehicle", Value: fields.VehicleBrand + " " + fields.VehicleName},
			export.ReceiptLine{Label: "Plate", Value: fields.LicensePlate},
		)
	}

	pdf, err := s.receipts.Render("Registration Receipt", lines)
	if err != nil {
		s.logger.Warn("receipt rendering failed", zap.String("account_id", result.Account.ID), zap.Error(err))
		result.Warnings = append(result.Warnings, "registration receipt could not be generated")
		return
	}

	url, err := s.store.Upload(ctx, s.config.Bucket, "receipts/"+result.Account.ID+".pdf", "application/pdf", pdf)
	if err != nil {
		s.logger.Warn("receipt upload failed", zap.String("account_id", result.Account.ID), zap.Error(err))
		result.Warnings = append(result.Warnings, "registration receipt could not be stored")
		return
	}
	result.ReceiptURL = url
}

func (s *RegistrationService) redirectFor(role models.Role) string {
	if role.Family == models.FamilyDriver {
		return s.config.DriverSignInURL
	}
	return s.config.StaffSignInURL
}

// classifyAuthError maps a raw gateway failure onto the registration error
// taxonomy by substring, returning the classified message instead of the raw
// one.
func classifyAuthError(err error) *appErrors.Error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "database error saving new user"):
		return appErrors.Wrap(err, appErrors.ErrDatabaseTrigger.Code, appErrors.ErrDatabaseTrigger.Status, appErrors.ErrDatabaseTrigger.Message)
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "already registered"):
		return appErrors.Wrap(err, appErrors.ErrDuplicateAccount.Code, appErrors.ErrDuplicateAccount.Status, appErrors.ErrDuplicateAccount.Message)
	case strings.Contains(msg, "invalid email"):
		return appErrors.Wrap(err, appErrors.ErrInvalidEmail.Code, appErrors.ErrInvalidEmail.Status, appErrors.ErrInvalidEmail.Message)
	case strings.Contains(msg, "weak password"), strings.Contains(msg, "password"):
		return appErrors.Wrap(err, appErrors.ErrWeakPassword.Code, appErrors.ErrWeakPassword.Status, appErrors.ErrWeakPassword.Message)
	case strings.Contains(msg, "network"):
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, appErrors.ErrNetwork.Message)
	case strings.Contains(msg, "storage"):
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, appErrors.ErrStorage.Message)
	default:
		return appErrors.Wrap(err, appErrors.ErrUnknownAuth.Code, appErrors.ErrUnknownAuth.Status, appErrors.ErrUnknownAuth.Message)
	}
}

// buildSignupMetadata shapes the snake-case metadata bag. Name, role, and id
// keys are always present; everything else only when non-empty.
func buildSignupMetadata(fields models.DraftFields, role models.Role, uploads models.UploadResult) map[string]interface{} {
	displayName := fields.DisplayName()

	metadata := map[string]interface{}{
		"role":         role.Name,
		"role_id":      role.ID,
		"name":         displayName,
		"full_name":    displayName,
		"display_name": displayName,
		"first_name":   fields.FirstName,
		"last_name":    fields.LastName,
	}

	optional := map[string]string{
		"ktp_address":         fields.KTPAddress,
		"ktp_number":          fields.KTPNumber,
		"phone_number":        fields.PhoneNumber,
		"family_phone_number": fields.FamilyPhoneNumber,
		"license_number":      fields.LicenseNumber,
		"license_expiry":      fields.LicenseExpiry,
		"religion":            fields.Religion,
		"ethnicity":           fields.Ethnicity,
		"education":           fields.Education,
		"vehicle_name":        fields.VehicleName,
		"vehicle_type":        fields.VehicleType,
		"vehicle_brand":       fields.VehicleBrand,
		"license_plate":       fields.LicensePlate,
		"vehicle_year":        fields.VehicleYear,
		"vehicle_color":       fields.VehicleColor,
		"vehicle_status":      fields.VehicleStatus,
	}
	for key, value := range optional {
		if value != "" {
			metadata[key] = value
		}
	}

	for slot, url := range uploads {
		metadata[slot.MetadataKey()] = url
	}

	return metadata
}

func buildUserProfile(accountID string, fields models.DraftFields, role models.Role, uploads models.UploadResult) *models.UserProfile {
	return &models.UserProfile{
		ID:                accountID,
		Email:             fields.Email,
		Role:              role.Name,
		RoleID:            role.ID,
		FullName:          fields.DisplayName(),
		FirstName:         fields.FirstName,
		LastName:          fields.LastName,
		KTPAddress:        nullable(fields.KTPAddress),
		KTPNumber:         nullable(fields.KTPNumber),
		PhoneNumber:       nullable(fields.PhoneNumber),
		FamilyPhoneNumber: nullable(fields.FamilyPhoneNumber),
		LicenseNumber:     nullable(fields.LicenseNumber),
		LicenseExpiry:     nullable(fields.LicenseExpiry),
		Religion:          nullable(fields.Religion),
		Ethnicity:         nullable(fields.Ethnicity),
		Education:         nullable(fields.Education),
		SelfiePhotoURL:    uploadURL(uploads, models.SlotSelfiePhoto),
		FamilyCardURL:     uploadURL(uploads, models.SlotFamilyCard),
		KTPURL:            uploadURL(uploads, models.SlotKTPDocument),
		SIMURL:            uploadURL(uploads, models.SlotSIMDocument),
		SKCKURL:           uploadURL(uploads, models.SlotSKCKDocument),
	}
}

func buildStaffProfile(accountID string, fields models.DraftFields, role models.Role) *models.StaffProfile {
	return &models.StaffProfile{
		UserID:   accountID,
		Email:    fields.Email,
		Role:     role.Name,
		RoleID:   role.ID,
		FullName: fields.DisplayName(),
	}
}

func buildDriverProfile(accountID string, fields models.DraftFields, role models.Role, uploads models.UploadResult) *models.DriverProfile {
	profile := &models.DriverProfile{
		UserID:        accountID,
		Email:         fields.Email,
		Role:          role.Name,
		RoleID:        role.ID,
		FullName:      fields.DisplayName(),
		LicenseNumber: nullable(fields.LicenseNumber),
		LicenseExpiry: nullable(fields.LicenseExpiry),
	}

	// Vehicle columns only apply to Driver Mitra, and only when complete.
	if role.Name == models.RoleDriverMitra && fields.VehicleComplete() {
		profile.VehicleName = nullable(fields.VehicleName)
		profile.VehicleType = nullable(fields.VehicleType)
		profile.VehicleBrand = nullable(fields.VehicleBrand)
		profile.LicensePlate = nullable(fields.LicensePlate)
		profile.VehicleYear = nullable(fields.VehicleYear)
		profile.VehicleColor = nullable(fields.VehicleColor)
		profile.VehicleStatus = nullable(fields.VehicleStatus)
		profile.VehiclePhotoURL = uploadURL(uploads, models.SlotVehiclePhoto)
	}

	return profile
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func uploadURL(uploads models.UploadResult, slot models.FileSlot) *string {
	if url, ok := uploads[slot]; ok && url != "" {
		return &url
	}
	return nil
}

// randomFileName keeps the original extension but replaces the name with a
// random token plus timestamp, so repeated uploads never collide.
func randomFileName(original string) string {
	ext := path.Ext(original)
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	}
	return fmt.Sprintf("%s_%d%s", hex.EncodeToString(buf), time.Now().UnixMilli(), ext)
}
