package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/travelintrips/registration-api/internal/dto"
	"github.com/travelintrips/registration-api/internal/models"
	appErrors "github.com/travelintrips/registration-api/pkg/errors"
)

type draftStore interface {
	Get(ctx context.Context, id string) (*models.RegistrationDraft, error)
	Save(ctx context.Context, draft *models.RegistrationDraft) error
	Delete(ctx context.Context, id string) error
}

// WizardConfig tunes wizard-side validation.
type WizardConfig struct {
	MinPasswordLength int
	MaxFileSizeBytes  int64
	AllowedMIMEs      []string
}

// WizardService drives the multi-stage registration flow: stage sequencing,
// per-stage validation gating, and file staging without upload.
type WizardService struct {
	drafts    draftStore
	validator *validator.Validate
	logger    *zap.Logger
	config    WizardConfig
}

// NewWizardService constructs a WizardService instance.
func NewWizardService(drafts draftStore, validate *validator.Validate, logger *zap.Logger, config WizardConfig) *WizardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.MinPasswordLength <= 0 {
		config.MinPasswordLength = 6
	}
	return &WizardService{drafts: drafts, validator: validate, logger: logger, config: config}
}

// CreateDraft starts an empty registration attempt on the personal stage.
func (s *WizardService) CreateDraft(ctx context.Context) (*dto.DraftState, error) {
	draft := models.NewRegistrationDraft()
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create draft")
	}
	return s.state(draft, nil), nil
}

// GetDraft returns the wizard view of an existing draft.
func (s *WizardService) GetDraft(ctx context.Context, id string) (*dto.DraftState, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.state(draft, nil), nil
}

// SetFields applies a partial field patch. Patching never triggers stage
// validation; gating happens on Advance.
func (s *WizardService) SetFields(ctx context.Context, id string, req dto.SetFieldsRequest) (*dto.DraftState, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyFieldPatch(&draft.Fields, req)

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save draft")
	}
	return s.state(draft, nil), nil
}

// SetRole selects the role, recomputes the stage sequence, and clamps the
// active stage back into the sequence when the vehicle stage disappeared.
// Vehicle fields already entered are kept.
func (s *WizardService) SetRole(ctx context.Context, id, role string) (*dto.DraftState, error) {
	if !models.KnownRole(role) {
		return nil, appErrors.Clone(appErrors.ErrUnknownRole, fmt.Sprintf("role %q is not recognized", role))
	}

	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	draft.Fields.Role = role
	draft.ClampStage()

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save draft")
	}
	return s.state(draft, nil), nil
}

// Advance moves to the next stage if the active stage validates. On
// validation failure the draft stays put and the state carries the inline
// field errors.
func (s *WizardService) Advance(ctx context.Context, id string) (*dto.DraftState, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if fieldErrs := s.validateStage(draft, draft.Stage); len(fieldErrs) > 0 {
		return s.state(draft, fieldErrs), appErrors.ErrStageBlocked
	}

	seq := draft.TabSequence()
	idx := draft.StageIndex()
	if idx < 0 {
		draft.ClampStage()
		idx = draft.StageIndex()
	}
	if idx < len(seq)-1 {
		draft.Stage = seq[idx+1]
	}

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save draft")
	}
	return s.state(draft, nil), nil
}

// Retreat moves to the prior stage. Always allowed except on personal.
func (s *WizardService) Retreat(ctx context.Context, id string) (*dto.DraftState, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	seq := draft.TabSequence()
	idx := draft.StageIndex()
	if idx < 0 {
		draft.ClampStage()
		idx = draft.StageIndex()
	}
	if idx > 0 {
		draft.Stage = seq[idx-1]
	}

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save draft")
	}
	return s.state(draft, nil), nil
}

// StageFile replaces the staged document for a slot. Nothing is uploaded
// until submission.
func (s *WizardService) StageFile(ctx context.Context, id string, slot models.FileSlot, name, contentType string, data []byte) (*dto.DraftState, error) {
	if !models.ValidSlot(string(slot)) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown document slot %q", slot))
	}
	if len(data) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "document file is empty")
	}
	if s.config.MaxFileSizeBytes > 0 && int64(len(data)) > s.config.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, "document file exceeds the maximum allowed size")
	}
	if !s.allowedContentType(contentType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("document type %q is not allowed", contentType))
	}

	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	draft.Files[slot] = &models.StagedFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save draft")
	}
	return s.state(draft, nil), nil
}

// allowedContentType checks the staged file's media type against the
// configured allow-list. An empty list allows everything.
func (s *WizardService) allowedContentType(contentType string) bool {
	if len(s.config.AllowedMIMEs) == 0 {
		return true
	}
	mediaType := strings.TrimSpace(strings.ToLower(contentType))
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}
	for _, allowed := range s.config.AllowedMIMEs {
		if mediaType == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// validateStage returns inline field errors for the given stage.
func (s *WizardService) validateStage(draft *models.RegistrationDraft, stage models.Stage) []dto.FieldError {
	var errs []dto.FieldError
	f := draft.Fields

	switch stage {
	case models.StagePersonal:
		if f.Role == "" {
			errs = append(errs, dto.FieldError{Field: "role", Message: "Role is required"})
		} else if !models.KnownRole(f.Role) {
			errs = append(errs, dto.FieldError{Field: "role", Message: "Selected role is not recognized"})
		}
		if f.Email == "" {
			errs = append(errs, dto.FieldError{Field: "email", Message: "Email is required"})
		} else if s.validator.Var(f.Email, "email") != nil {
			errs = append(errs, dto.FieldError{Field: "email", Message: "Invalid email format"})
		}
		if f.Password == "" {
			errs = append(errs, dto.FieldError{Field: "password", Message: "Password is required"})
		} else if len(f.Password) < s.config.MinPasswordLength {
			errs = append(errs, dto.FieldError{Field: "password", Message: fmt.Sprintf("Password must be at least %d characters", s.config.MinPasswordLength)})
		}
	case models.StageVehicle:
		if f.Role == models.RoleDriverMitra && !f.VehicleComplete() {
			// The vehicle-name field carries the group error, matching the
			// original form's error anchoring.
			errs = append(errs, dto.FieldError{Field: "vehicle_name", Message: "Vehicle information is required for Driver Mitra"})
		}
	}

	return errs
}

// validateAll walks the whole sequence; used before submission.
func (s *WizardService) validateAll(draft *models.RegistrationDraft) []dto.FieldError {
	var errs []dto.FieldError
	for _, stage := range draft.TabSequence() {
		errs = append(errs, s.validateStage(draft, stage)...)
	}
	return errs
}

func (s *WizardService) state(draft *models.RegistrationDraft, errs []dto.FieldError) *dto.DraftState {
	staged := make([]dto.StagedFileInfo, 0, len(draft.Files))
	for _, slot := range draft.StagedSlots() {
		f := draft.Files[slot]
		staged = append(staged, dto.StagedFileInfo{
			Slot:        slot,
			Name:        f.Name,
			ContentType: f.ContentType,
			Size:        f.Size,
		})
	}

	fields := draft.Fields
	fields.Password = ""

	return &dto.DraftState{
		ID:          draft.ID,
		Stage:       draft.Stage,
		Sequence:    draft.TabSequence(),
		Fields:      fields,
		StagedFiles: staged,
		Errors:      errs,
	}
}

func applyFieldPatch(fields *models.DraftFields, req dto.SetFieldsRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&fields.Email, req.Email)
	set(&fields.Password, req.Password)
	set(&fields.FirstName, req.FirstName)
	set(&fields.LastName, req.LastName)
	set(&fields.FullName, req.FullName)
	set(&fields.KTPAddress, req.KTPAddress)
	set(&fields.KTPNumber, req.KTPNumber)
	set(&fields.Religion, req.Religion)
	set(&fields.Ethnicity, req.Ethnicity)
	set(&fields.Education, req.Education)
	set(&fields.PhoneNumber, req.PhoneNumber)
	set(&fields.FamilyPhoneNumber, req.FamilyPhoneNumber)
	set(&fields.LicenseNumber, req.LicenseNumber)
	set(&fields.LicenseExpiry, req.LicenseExpiry)
	set(&fields.VehicleName, req.VehicleName)
	set(&fields.VehicleType, req.VehicleType)
	set(&fields.VehicleBrand, req.VehicleBrand)
	set(&fields.LicensePlate, req.LicensePlate)
	set(&fields.VehicleYear, req.VehicleYear)
	set(&fields.VehicleColor, req.VehicleColor)
	set(&fields.VehicleStatus, req.VehicleStatus)
}
