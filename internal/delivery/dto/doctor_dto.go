package dto

// Request DTOs

type SearchDoctorsQuery struct {
	Query     string `json:"q" validate:"max=100"`
	Specialty string `json:"specialty" validate:"omitempty,specialty"`
}

// Response DTOs

type DoctorResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Experience     int      `json:"experience"`
	Rating         float64  `json:"rating"`
	AvailableSlots []string `json:"available_slots"`
	Image          string   `json:"image"`
	Location       string   `json:"location"`
}

type FilterResponse struct {
	Query     string `json:"q"`
	Specialty string `json:"specialty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
	Filter  FilterResponse   `json:"filter"`
}

type SpecialtyListResponse struct {
	Default     string   `json:"default"`
	Specialties []string `json:"specialties"`
}
