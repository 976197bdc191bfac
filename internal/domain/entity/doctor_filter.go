package entity

import "strings"

// AllSpecialties is the specialty selector that disables specialty filtering.
const AllSpecialties = "All Specialties"

const (
	SpecialtyPrimaryCare = "Primary Care"
	SpecialtyCardiology  = "Cardiology"
	SpecialtyDermatology = "Dermatology"
	SpecialtyOrthopedics = "Orthopedics"
	SpecialtyPediatrics  = "Pediatrics"
)

// Specialties lists the selectable specialty labels in display order.
var Specialties = []string{
	SpecialtyPrimaryCare,
	SpecialtyCardiology,
	SpecialtyDermatology,
	SpecialtyOrthopedics,
	SpecialtyPediatrics,
}

// IsSpecialtySelector reports whether s is AllSpecialties or a known label.
func IsSpecialtySelector(s string) bool {
	if s == AllSpecialties {
		return true
	}
	for _, label := range Specialties {
		if label == s {
			return true
		}
	}
	return false
}

// FilterState is the search input of one client.
type FilterState struct {
	Query     string `json:"query"`
	Specialty string `json:"specialty"`
}

// DefaultFilterState returns an empty query over all specialties.
func DefaultFilterState() FilterState {
	return FilterState{Specialty: AllSpecialties}
}

// Apply runs FilterDoctors with the state's query and specialty.
func (f FilterState) Apply(doctors []Doctor) []Doctor {
	return FilterDoctors(doctors, f.Query, f.Specialty)
}

// FilterDoctors returns the doctors matching query and specialty, in source order.
//
// A non-empty query must be a case-insensitive substring of the doctor's name
// or specialty. A specialty other than AllSpecialties must match exactly.
// The result is never nil.
func FilterDoctors(doctors []Doctor, query, specialty string) []Doctor {
	needle := strings.ToLower(query)
	filtered := make([]Doctor, 0, len(doctors))
	for _, doctor := range doctors {
		if query != "" &&
			!strings.Contains(strings.ToLower(doctor.Name), needle) &&
			!strings.Contains(strings.ToLower(doctor.Specialty), needle) {
			continue
		}
		if specialty != AllSpecialties && doctor.Specialty != specialty {
			continue
		}
		filtered = append(filtered, doctor)
	}
	return filtered
}
