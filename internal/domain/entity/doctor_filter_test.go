package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(doctors []Doctor) []string {
	out := make([]string, len(doctors))
	for i, d := range doctors {
		out[i] = d.ID
	}
	return out
}

func TestFilterDoctors(t *testing.T) {
	doctors := SeedDoctors()

	tests := []struct {
		name      string
		query     string
		specialty string
		want      []string
	}{
		{"empty query keeps everything", "", AllSpecialties, []string{"1", "2", "3"}},
		{"query matches name case-insensitively", "sarah", AllSpecialties, []string{"1"}},
		{"query matches specialty", "DERMA", AllSpecialties, []string{"2"}},
		{"query and specialty combine", "dr.", SpecialtyPediatrics, []string{"3"}},
		{"specialty must match exactly", "", "pediatrics", []string{}},
		{"unmatched specialty yields empty", "", SpecialtyOrthopedics, []string{}},
		{"query mismatch yields empty", "zzz", AllSpecialties, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDoctors(doctors, tt.query, tt.specialty)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterDoctorsIsPure(t *testing.T) {
	doctors := SeedDoctors()

	first := FilterDoctors(doctors, "dr", AllSpecialties)
	second := FilterDoctors(doctors, "dr", AllSpecialties)

	assert.Equal(t, first, second)
	assert.Equal(t, SeedDoctors(), doctors)
}

func TestFilterStateDefaults(t *testing.T) {
	state := DefaultFilterState()
	assert.Equal(t, AllSpecialties, state.Specialty)
	assert.Len(t, state.Apply(SeedDoctors()), 3)

	assert.True(t, IsSpecialtySelector(AllSpecialties))
	assert.True(t, IsSpecialtySelector(SpecialtyPrimaryCare))
	assert.False(t, IsSpecialtySelector("Neurology"))
}
