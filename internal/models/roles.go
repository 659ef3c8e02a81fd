package models

// RoleFamily groups roles by which profile table they belong to.
type RoleFamily string

const (
	FamilyStaff   RoleFamily = "staff"
	FamilyDriver  RoleFamily = "driver"
	FamilyGeneric RoleFamily = "generic"
)

// Role pairs a display name with its numeric id and table family. The ids
// mirror the role_id column the backend triggers expect.
type Role struct {
	Name   string
	ID     int
	Family RoleFamily
}

const (
	RoleAdmin            = "Admin"
	RoleDriverMitra      = "Driver Mitra"
	RoleDriverPerusahaan = "Driver Perusahaan"
	RoleStaffAdmin       = "Staff Admin"
	RoleStaffTraffic     = "Staff Traffic"
	RoleStaffTrips       = "Staff Trips"
	RoleDispatcher       = "Dispatcher"
	RoleCustomer         = "Customer"
	RoleAgent            = "Agent"
)

// roleRegistry is the single role table shared by the wizard and the
// submission pipeline. Unknown role names are rejected, not defaulted.
var roleRegistry = map[string]Role{
	RoleAdmin:            {Name: RoleAdmin, ID: 1, Family: FamilyStaff},
	RoleDriverMitra:      {Name: RoleDriverMitra, ID: 2, Family: FamilyDriver},
	RoleDriverPerusahaan: {Name: RoleDriverPerusahaan, ID: 3, Family: FamilyDriver},
	RoleStaffAdmin:       {Name: RoleStaffAdmin, ID: 4, Family: FamilyStaff},
	RoleStaffTraffic:     {Name: RoleStaffTraffic, ID: 5, Family: FamilyStaff},
	RoleStaffTrips:       {Name: RoleStaffTrips, ID: 7, Family: FamilyStaff},
	RoleDispatcher:       {Name: RoleDispatcher, ID: 8, Family: FamilyStaff},
	RoleCustomer:         {Name: RoleCustomer, ID: 10, Family: FamilyGeneric},
	RoleAgent:            {Name: RoleAgent, ID: 11, Family: FamilyStaff},
}

// LookupRole resolves a role name against the registry.
func LookupRole(name string) (Role, bool) {
	role, ok := roleRegistry[name]
	return role, ok
}

// KnownRole reports whether the role name exists in the registry.
func KnownRole(name string) bool {
	_, ok := roleRegistry[name]
	return ok
}
