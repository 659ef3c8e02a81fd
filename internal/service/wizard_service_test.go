package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelintrips/registration-api/internal/dto"
	"github.com/travelintrips/registration-api/internal/models"
	appErrors "github.com/travelintrips/registration-api/pkg/errors"
)

type draftStoreStub struct {
	drafts  map[string]*models.RegistrationDraft
	getErr  error
	saveErr error
}

func newDraftStoreStub() *draftStoreStub {
	return &draftStoreStub{drafts: make(map[string]*models.RegistrationDraft)}
}

func (s *draftStoreStub) Get(ctx context.Context, id string) (*models.RegistrationDraft, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	draft, ok := s.drafts[id]
	if !ok {
		return nil, appErrors.ErrDraftNotFound
	}
	return draft, nil
}

func (s *draftStoreStub) Save(ctx context.Context, draft *models.RegistrationDraft) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.drafts[draft.ID] = draft
	return nil
}

func (s *draftStoreStub) Delete(ctx context.Context, id string) error {
	delete(s.drafts, id)
	return nil
}

func newTestWizard(store *draftStoreStub) *WizardService {
	return NewWizardService(store, nil, nil, WizardConfig{MinPasswordLength: 6, MaxFileSizeBytes: 1024})
}

func strPtr(s string) *string { return &s }

func TestWizardCreateDraft(t *testing.T) {
	store := newDraftStoreStub()
	wizard := newTestWizard(store)

	state, err := wizard.CreateDraft(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, models.StagePersonal, state.Stage)
	assert.Equal(t, []models.Stage{models.StagePersonal, models.StageContact, models.StageDocuments}, state.Sequence)
}

func TestWizardAdvanceBlockedOnEmptyPersonal(t *testing.T) {
	store := newDraftStoreStub()
	wizard := newTestWizard(store)

	created, err := wizard.CreateDraft(context.Background())
	require.NoError(t, err)

	state, err := wizard.Advance(context.Background(), created.ID)
	require.ErrorIs(t, err, appErrors.ErrStageBlocked)
	require.NotNil(t, state)
	assert.Equal(t, models.StagePersonal, state.Stage)

	fields := map[string]bool{}
	for _, fe := range state.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["role"])
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])
}

func TestWizardNonDriverSkipsVehicleStage(t *testing.T) {
	store := newDraftStoreStub()
	wizard := newTestWizard(store)
	ctx := context.Background()

	created, err := wizard.CreateDraft(ctx)
	require.NoError(t, err)

	_, err = wizard.SetRole(ctx, created.ID, models.RoleStaffTrips)
	require.NoError(t, err)
	_, err = wizard.SetFields(ctx, created.ID, dto.SetFieldsRequest{
		Email:    strPtr("staff@example.com"),
		Password: strPtr("secret123"),
	})
	require.NoError(t, err)

	state, err := wizard.Advance(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageContact, state.Stage)

	state, err = wizard.Advance(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageDocuments, state.Stage)
}

func TestWizardDriverMitraBlockedOnIncompleteVehicle(t *testing.T) {
	store := newDraftStoreStub()
	wizard := newTestWizard(store)
	ctx := context.Background()

	created, err := wizard.CreateDraft(ctx)
	require.NoError(t, err)

	_, err = wizard.SetRole(ctx, created.ID, models.RoleDriverMitra)
	require.NoError(t, err)
	_, err = wizard.SetFields(ctx, created.ID, dto.SetFieldsRequest{
		Email:        strPtr("driver@example.com"),
		Password:     strPtr("secret123"),
		VehicleName:  strPtr("Avanza"),
		VehicleType:  strPtr("MPV"),
		VehicleBrand: strPtr("Toyota"),
		LicensePlate: strPtr("B 1234 XYZ"),
		VehicleYear:  strPtr("2020"),
		// vehicle color and status missing
	})
	require.NoError(t, err)

	_, err = wizard.Advance(ctx, created.ID)
	require.NoError(t, err)
	state, err := wizard.Advance(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, models.StageVehicle, state.Stage)

	state, err = wizard.Advance(ctx, created.ID)
	require.ErrorIs(t, err, appErrors.ErrStageBlocked)
	require.Len(t, state.Errors, 1)
	assert.Equal(t, "vehicle_name", state.Errors[0].Field)
}

func TestWizardRoleToggleClampsStageAndKeepsVehicleData(t *testing.T) {
	store := newDraftStoreStub()
	wizard := newTestWizard(store)
	ctx := context.Background()

	created, err := wizard.CreateDraft(ctx)
	require.NoError(t, err)

	_, err = wizard.SetRole(ctx, created.ID, models.RoleDriverMitra)
	require.NoError(t, err)
	_, err = wizard.SetFields(ctx, created.ID, dto.SetFieldsRequest{
		Email:       strPtr("driver@example.com"),
		Password:    strPtr("secret123"),
		VehicleName: strPtr("Avanza"),
	})
	require.NoError(t, err)

	// walk onto the vehicle stage, then switch to a role without one
	_, err = wizard.Advance(ctx, created.ID)
	require.NoError(t, err)
	state, err := wizard.Advance(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, models.StageVehicle, state.Stage)

	state, err = wizard.SetRole(ctx, created.ID, models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, models.StageDocuments, state.Stage)
	assert.Equal(t, []models.Stage{models.StagePersonal, models.StageContact, models.StageDocuments}, state.Sequence)
	assert.Equal(t, "Avanza", state.Fields.VehicleName)

	// toggling back reinserts the vehicle stage
	state, err = wizard.SetRole(ctx, created.ID, models.RoleDriverMitra)
	require.NoError(t, err)
	assert.Contains(t, state.Sequence, models.StageVehicle)
}

func TestWizardSetRoleUnknown(t *testing.T) {
	store := newDraftStoreStub()
	wizard := newTestWizard(store)

	created, err := wizard.CreateDraft(context.Background())
	require.NoError(t, err)

	_, err = wizard.SetRole(context.Background(), created.ID, "Pilot")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnknownRole.Code, appErrors.FromError(err).Code)
}

func TestWizardStageFileValidation(t *testing.T) {
	store := newDraftStoreStub()
	wizard := newTestWizard(store)
	ctx := context.Background()

	created, err := wizard.CreateDraft(ctx)
	require.NoError(t, err)

	_, err = wizard.StageFile(ctx, created.ID, "passport", "p.jpg", "image/jpeg", []byte("x"))
	require.Error(t, err)

	_, err = wizard.StageFile(ctx, created.ID, models.SlotSelfiePhoto, "s.jpg", "image/jpeg", nil)
	require.Error(t, err)

	_, err = wizard.StageFile(ctx, created.ID, models.SlotSelfiePhoto, "s.jpg", "image/jpeg", make([]byte, 2048))
	require.Error(t, err)

	state, err := wizard.StageFile(ctx, created.ID, models.SlotSelfiePhoto, "s.jpg", "image/jpeg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	require.Len(t, state.StagedFiles, 1)
	assert.Equal(t, models.SlotSelfiePhoto, state.StagedFiles[0].Slot)
	assert.Equal(t, int64(len("jpeg-bytes")), state.StagedFiles[0].Size)
}

func TestWizardStageFileContentTypeAllowList(t *testing.T) {
	store := newDraftStoreStub()
	wizard := NewWizardService(store, nil, nil, WizardConfig{
		MinPasswordLength: 6,
		MaxFileSizeBytes:  1024,
		AllowedMIMEs:      []string{"image/jpeg", "application/pdf"},
	})
	ctx := context.Background()

	created, err := wizard.CreateDraft(ctx)
	require.NoError(t, err)

	_, err = wizard.StageFile(ctx, created.ID, models.SlotSelfiePhoto, "s.gif", "image/gif", []byte("gif"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	// media-type parameters and casing do not matter
	state, err := wizard.StageFile(ctx, created.ID, models.SlotSelfiePhoto, "s.jpg", "Image/JPEG; charset=binary", []byte("jpeg"))
	require.NoError(t, err)
	require.Len(t, state.StagedFiles, 1)
}

func TestWizardRetreatStopsAtPersonal(t *testing.T) {
	store := newDraftStoreStub()
	wizard := newTestWizard(store)
	ctx := context.Background()

	created, err := wizard.CreateDraft(ctx)
	require.NoError(t, err)

	state, err := wizard.Retreat(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StagePersonal, state.Stage)
}

func TestWizardStateNeverEchoesPassword(t *testing.T) {
	store := newDraftStoreStub()
	wizard := newTestWizard(store)
	ctx := context.Background()

	created, err := wizard.CreateDraft(ctx)
	require.NoError(t, err)

	state, err := wizard.SetFields(ctx, created.ID, dto.SetFieldsRequest{Password: strPtr("secret123")})
	require.NoError(t, err)
	assert.Empty(t, state.Fields.Password)
	// but the stored draft keeps it for submission
	assert.Equal(t, "secret123", store.drafts[created.ID].Fields.Password)
}
