package model

// Specialization is a doctor's field of practice.
type Specialization string

const (
	SpecializationCardiology  Specialization = "Cardiology"
	SpecializationNeurology   Specialization = "Neurology"
	SpecializationOrthopedics Specialization = "Orthopedics"
	SpecializationPediatrics  Specialization = "Pediatrics"
	SpecializationGeneral     Specialization = "General"
	SpecializationSurgery     Specialization = "Surgery"
	SpecializationDermatology Specialization = "Dermatology"
	SpecializationPsychiatry  Specialization = "Psychiatry"
)

// Specializations lists every accepted specialization in display order.
var Specializations = []Specialization{
	SpecializationCardiology,
	SpecializationNeurology,
	SpecializationOrthopedics,
	SpecializationPediatrics,
	SpecializationGeneral,
	SpecializationSurgery,
	SpecializationDermatology,
	SpecializationPsychiatry,
}

// Label returns the human readable name shown in listings.
func (s Specialization) Label() string {
	if s == SpecializationGeneral {
		return "General Practice"
	}
	return string(s)
}

// StaffRole is the job a staff member holds.
type StaffRole string

const (
	RoleNurse         StaffRole = "Nurse"
	RoleReceptionist  StaffRole = "Receptionist"
	RoleLabTechnician StaffRole = "Lab Technician"
	RoleAdmin         StaffRole = "Admin"
)

var StaffRoles = []StaffRole{RoleNurse, RoleReceptionist, RoleLabTechnician, RoleAdmin}

// Label returns the human readable name shown in listings.
func (r StaffRole) Label() string {
	if r == RoleAdmin {
		return "Administrator"
	}
	return string(r)
}

// AppointmentStatus carries no transition rules; any status may follow any other.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusNoShow    AppointmentStatus = "No-Show"
)

var AppointmentStatuses = []AppointmentStatus{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow}

// Gender codes as stored on a patient record.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

var Genders = []string{GenderMale, GenderFemale, GenderOther}

var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func IsValidSpecialization(s string) bool { return contains(Specializations, Specialization(s)) }

func IsValidStaffRole(s string) bool { return contains(StaffRoles, StaffRole(s)) }

func IsValidAppointmentStatus(s string) bool {
	return contains(AppointmentStatuses, AppointmentStatus(s))
}

func IsValidGender(s string) bool { return contains(Genders, s) }

func IsValidBloodGroup(s string) bool { return contains(BloodGroups, s) }
