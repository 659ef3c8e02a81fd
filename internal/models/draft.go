package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stage identifies one step of the registration wizard.
type Stage string

const (
	StagePersonal  Stage = "personal"
	StageContact   Stage = "contact"
	StageVehicle   Stage = "vehicle"
	StageDocuments Stage = "documents"
)

// FileSlot names one of the optional document upload fields.
type FileSlot string

const (
	SlotSelfiePhoto  FileSlot = "selfie_photo"
	SlotFamilyCard   FileSlot = "family_card"
	SlotKTPDocument  FileSlot = "ktp_document"
	SlotSIMDocument  FileSlot = "sim_document"
	SlotSKCKDocument FileSlot = "skck_document"
	SlotVehiclePhoto FileSlot = "vehicle_photo"
)

// FileSlots lists every slot in upload order. The submission pipeline walks
// this slice so error attribution stays deterministic.
var FileSlots = []FileSlot{
	SlotSelfiePhoto,
	SlotFamilyCard,
	SlotKTPDocument,
	SlotSIMDocument,
	SlotSKCKDocument,
	SlotVehiclePhoto,
}

// slotFolders maps each slot to its sub-folder in the documents bucket.
var slotFolders = map[FileSlot]string{
	SlotSelfiePhoto:  "selfies",
	SlotFamilyCard:   "family-cards",
	SlotKTPDocument:  "ktp",
	SlotSIMDocument:  "sim",
	SlotSKCKDocument: "skck",
	SlotVehiclePhoto: "vehicles",
}

// Folder returns the bucket sub-folder for the slot.
func (s FileSlot) Folder() string {
	if folder, ok := slotFolders[s]; ok {
		return folder
	}
	return string(s)
}

// MetadataKey returns the snake-case key used for the slot's URL in the
// signup metadata and profile rows.
func (s FileSlot) MetadataKey() string {
	switch s {
	case SlotKTPDocument:
		return "ktp_url"
	case SlotSIMDocument:
		return "sim_url"
	case SlotSKCKDocument:
		return "skck_url"
	default:
		return string(s) + "_url"
	}
}

// ValidSlot reports whether the given name is a known file slot.
func ValidSlot(name string) bool {
	_, ok := slotFolders[FileSlot(name)]
	return ok
}

// StagedFile holds a document that was staged but not yet uploaded.
type StagedFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Data        []byte `json:"data"`
}

// DraftFields is the flat field set collected across wizard stages.
type DraftFields struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`

	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	FullName   string `json:"full_name"`
	KTPAddress string `json:"ktp_address"`
	KTPNumber  string `json:"ktp_number"`
	Religion   string `json:"religion"`
	Ethnicity  string `json:"ethnicity"`
	Education  string `json:"education"`

	PhoneNumber       string `json:"phone_number"`
	FamilyPhoneNumber string `json:"family_phone_number"`
	LicenseNumber     string `json:"license_number"`
	LicenseExpiry     string `json:"license_expiry"`

	VehicleName   string `json:"vehicle_name"`
	VehicleType   string `json:"vehicle_type"`
	VehicleBrand  string `json:"vehicle_brand"`
	LicensePlate  string `json:"license_plate"`
	VehicleYear   string `json:"vehicle_year"`
	VehicleColor  string `json:"vehicle_color"`
	VehicleStatus string `json:"vehicle_status"`
}

// VehicleComplete reports whether every vehicle field is present.
func (f DraftFields) VehicleComplete() bool {
	return f.VehicleName != "" &&
		f.VehicleType != "" &&
		f.VehicleBrand != "" &&
		f.LicensePlate != "" &&
		f.VehicleYear != "" &&
		f.VehicleColor != "" &&
		f.VehicleStatus != ""
}

// DisplayName resolves the account display name: full name, then first+last,
// then the email address.
func (f DraftFields) DisplayName() string {
	if name := strings.TrimSpace(f.FullName); name != "" {
		return name
	}
	if name := strings.TrimSpace(f.FirstName + " " + f.LastName); name != "" {
		return name
	}
	return f.Email
}

// RegistrationDraft is the in-progress registration state for one session.
type RegistrationDraft struct {
	ID        string                   `json:"id"`
	Stage     Stage                    `json:"stage"`
	Fields    DraftFields              `json:"fields"`
	Files     map[FileSlot]*StagedFile `json:"files"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// NewRegistrationDraft creates an empty draft positioned on the personal stage.
func NewRegistrationDraft() *RegistrationDraft {
	now := time.Now().UTC()
	return &RegistrationDraft{
		ID:        uuid.NewString(),
		Stage:     StagePersonal,
		Files:     make(map[FileSlot]*StagedFile),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TabSequence derives the ordered stage list from the selected role. The
// vehicle stage only exists for Driver Mitra registrations.
func (d *RegistrationDraft) TabSequence() []Stage {
	if d.Fields.Role == RoleDriverMitra {
		return []Stage{StagePersonal, StageContact, StageVehicle, StageDocuments}
	}
	return []Stage{StagePersonal, StageContact, StageDocuments}
}

// StageIndex returns the position of the active stage within the current
// sequence, or -1 when the stage fell out of the sequence.
func (d *RegistrationDraft) StageIndex() int {
	for i, stage := range d.TabSequence() {
		if stage == d.Stage {
			return i
		}
	}
	return -1
}

// ClampStage pulls the active stage back into the current sequence after a
// role change removed it. Entered field values are never cleared.
func (d *RegistrationDraft) ClampStage() {
	if d.StageIndex() >= 0 {
		return
	}
	seq := d.TabSequence()
	d.Stage = seq[len(seq)-1]
}

// StagedSlots lists slots that currently hold a file, in upload order.
func (d *RegistrationDraft) StagedSlots() []FileSlot {
	slots := make([]FileSlot, 0, len(d.Files))
	for _, slot := range FileSlots {
		if f, ok := d.Files[slot]; ok && f != nil {
			slots = append(slots, slot)
		}
	}
	return slots
}

// Reset returns every field and file slot to its initial empty value while
// keeping the draft id.
func (d *RegistrationDraft) Reset() {
	d.Fields = DraftFields{}
	d.Files = make(map[FileSlot]*StagedFile)
	d.Stage = StagePersonal
	d.UpdatedAt = time.Now().UTC()
}
