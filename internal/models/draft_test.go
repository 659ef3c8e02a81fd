package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabSequenceByRole(t *testing.T) {
	draft := NewRegistrationDraft()
	assert.Equal(t, []Stage{StagePersonal, StageContact, StageDocuments}, draft.TabSequence())

	draft.Fields.Role = RoleDriverMitra
	assert.Equal(t, []Stage{StagePersonal, StageContact, StageVehicle, StageDocuments}, draft.TabSequence())

	draft.Fields.Role = RoleDriverPerusahaan
	assert.Equal(t, []Stage{StagePersonal, StageContact, StageDocuments}, draft.TabSequence())
}

func TestClampStageAfterRoleChange(t *testing.T) {
	draft := NewRegistrationDraft()
	draft.Fields.Role = RoleDriverMitra
	draft.Stage = StageVehicle
	draft.Fields.VehicleName = "Avanza"

	draft.Fields.Role = RoleCustomer
	draft.ClampStage()

	assert.Equal(t, StageDocuments, draft.Stage)
	// entered vehicle data survives the role change
	assert.Equal(t, "Avanza", draft.Fields.VehicleName)
}

func TestClampStageNoopWhenInSequence(t *testing.T) {
	draft := NewRegistrationDraft()
	draft.Stage = StageContact
	draft.ClampStage()
	assert.Equal(t, StageContact, draft.Stage)
}

func TestDisplayNamePrecedence(t *testing.T) {
	f := DraftFields{Email: "user@example.com"}
	assert.Equal(t, "user@example.com", f.DisplayName())

	f.FirstName = "Budi"
	f.LastName = "Santoso"
	assert.Equal(t, "Budi Santoso", f.DisplayName())

	f.FullName = "Budi S."
	assert.Equal(t, "Budi S.", f.DisplayName())

	f = DraftFields{Email: "solo@example.com", FirstName: "Budi"}
	assert.Equal(t, "Budi", f.DisplayName())
}

func TestVehicleComplete(t *testing.T) {
	f := DraftFields{
		VehicleName:   "Avanza",
		VehicleType:   "MPV",
		VehicleBrand:  "Toyota",
		LicensePlate:  "B 1234 XYZ",
		VehicleYear:   "2020",
		VehicleColor:  "Black",
		VehicleStatus: "Owned",
	}
	assert.True(t, f.VehicleComplete())

	f.VehicleColor = ""
	assert.False(t, f.VehicleComplete())
}

func TestFileSlotFoldersAndKeys(t *testing.T) {
	assert.Equal(t, "selfies", SlotSelfiePhoto.Folder())
	assert.Equal(t, "family-cards", SlotFamilyCard.Folder())
	assert.Equal(t, "ktp", SlotKTPDocument.Folder())
	assert.Equal(t, "vehicles", SlotVehiclePhoto.Folder())

	assert.Equal(t, "selfie_photo_url", SlotSelfiePhoto.MetadataKey())
	assert.Equal(t, "ktp_url", SlotKTPDocument.MetadataKey())
	assert.Equal(t, "sim_url", SlotSIMDocument.MetadataKey())
	assert.Equal(t, "skck_url", SlotSKCKDocument.MetadataKey())
	assert.Equal(t, "vehicle_photo_url", SlotVehiclePhoto.MetadataKey())

	assert.True(t, ValidSlot("selfie_photo"))
	assert.False(t, ValidSlot("passport"))
}

func TestStagedSlotsUploadOrder(t *testing.T) {
	draft := NewRegistrationDraft()
	draft.Files[SlotVehiclePhoto] = &StagedFile{Name: "v.jpg"}
	draft.Files[SlotSelfiePhoto] = &StagedFile{Name: "s.jpg"}
	draft.Files[SlotSKCKDocument] = &StagedFile{Name: "k.pdf"}

	assert.Equal(t, []FileSlot{SlotSelfiePhoto, SlotSKCKDocument, SlotVehiclePhoto}, draft.StagedSlots())
}

func TestResetKeepsID(t *testing.T) {
	draft := NewRegistrationDraft()
	id := draft.ID
	draft.Fields.Email = "user@example.com"
	draft.Stage = StageDocuments
	draft.Files[SlotSelfiePhoto] = &StagedFile{Name: "s.jpg"}

	draft.Reset()

	require.Equal(t, id, draft.ID)
	assert.Equal(t, StagePersonal, draft.Stage)
	assert.Empty(t, draft.Fields.Email)
	assert.Empty(t, draft.Files)
}
