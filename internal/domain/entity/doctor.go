package entity

// Doctor represents one entry of the doctor directory.
// Doctors are loaded once at startup and never mutated afterwards.
type Doctor struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Experience     int      `json:"experience"`
	Rating         float64  `json:"rating"`
	AvailableSlots []string `json:"available_slots"`
	Image          string   `json:"image"`
	Location       string   `json:"location"`
}

// SeedDoctors returns the fixed directory the service starts with.
func SeedDoctors() []Doctor {
	return []Doctor{
		{
			ID:             "1",
			Name:           "Dr. Sarah Johnson",
			Specialty:      SpecialtyCardiology,
			Experience:     12,
			Rating:         4.8,
			AvailableSlots: []string{"2024-03-20T09:00:00Z", "2024-03-20T10:00:00Z"},
			Image:          "https://images.unsplash.com/photo-1559839734-2b71ea197ec2?auto=format&fit=crop&q=80&w=300&h=300",
			Location:       "New York, NY",
		},
		{
			ID:             "2",
			Name:           "Dr. Michael Chen",
			Specialty:      SpecialtyDermatology,
			Experience:     8,
			Rating:         4.9,
			AvailableSlots: []string{"2024-03-21T14:00:00Z", "2024-03-21T15:00:00Z"},
			Image:          "https://images.unsplash.com/photo-1612349317150-e413f6a5b16d?auto=format&fit=crop&q=80&w=300&h=300",
			Location:       "San Francisco, CA",
		},
		{
			ID:             "3",
			Name:           "Dr. Emily Martinez",
			Specialty:      SpecialtyPediatrics,
			Experience:     15,
			Rating:         4.7,
			AvailableSlots: []string{"2024-03-22T11:00:00Z", "2024-03-22T13:00:00Z"},
			Image:          "https://images.unsplash.com/photo-1594824476967-48c8b964273f?auto=format&fit=crop&q=80&w=300&h=300",
			Location:       "Chicago, IL",
		},
	}
}

// FindDoctor returns the doctor with the given id from doctors, or nil.
func FindDoctor(doctors []Doctor, id string) *Doctor {
	for i := range doctors {
		if doctors[i].ID == id {
			return &doctors[i]
		}
	}
	return nil
}
