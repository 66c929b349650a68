package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"floodaid/internal/catalog"
	"floodaid/internal/models"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		shelters []models.Shelter
		want     models.Statistics
	}{
		{
			name:     "no shelters",
			shelters: nil,
			want:     models.Statistics{PeopleAssisted: 3247},
		},
		{
			name: "zero capacity",
			shelters: []models.Shelter{
				{Name: "Closed Hall", Capacity: 0, Available: 0},
			},
			want: models.Statistics{ActiveShelters: 1, PeopleAssisted: 3257},
		},
		{
			name: "two shelters",
			shelters: []models.Shelter{
				{Name: "A", Capacity: 300, Available: 100},
				{Name: "B", Capacity: 100, Available: 100},
			},
			want: models.Statistics{
				ActiveShelters:  2,
				TotalCapacity:   400,
				AvailableSpaces: 200,
				OccupancyRate:   50.0,
				PeopleAssisted:  3267,
			},
		},
		{
			name: "occupancy rounded to one decimal",
			shelters: []models.Shelter{
				{Name: "A", Capacity: 3, Available: 2},
			},
			want: models.Statistics{
				ActiveShelters:  1,
				TotalCapacity:   3,
				AvailableSpaces: 2,
				OccupancyRate:   33.3,
				PeopleAssisted:  3257,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.shelters))
		})
	}
}

func TestComputeCatalog_SeedData(t *testing.T) {
	got := ComputeCatalog(catalog.Default())

	assert.Equal(t, 10, got.ActiveShelters)
	assert.Equal(t, 4150, got.TotalCapacity)
	assert.Equal(t, 1950, got.AvailableSpaces)
	assert.Equal(t, 53.0, got.OccupancyRate)
	assert.Equal(t, 6, got.ReliefCamps)
	assert.Equal(t, 10, got.EmergencyContacts)
	assert.Equal(t, 3347, got.PeopleAssisted)
}
