// Package stats aggregates shelter and catalog figures.
package stats

import (
	"math"

	"floodaid/internal/catalog"
	"floodaid/internal/models"
)

// peopleAssistedBase seeds the illustrative people-assisted counter. The
// figure is display data only and is not derived from any measurement.
const (
	peopleAssistedBase       = 3247
	peopleAssistedPerShelter = 10
)

// Compute sums capacity and availability over shelters. Occupancy is the
// occupied share of capacity as a percentage rounded to one decimal, and 0
// when there is no capacity.
func Compute(shelters []models.Shelter) models.Statistics {
	var capacity, available int
	for _, s := range shelters {
		capacity += s.Capacity
		available += s.Available
	}

	occupancy := 0.0
	if capacity > 0 {
		occupancy = math.Round(float64(capacity-available)/float64(capacity)*1000) / 10
	}

	return models.Statistics{
		ActiveShelters:  len(shelters),
		TotalCapacity:   capacity,
		AvailableSpaces: available,
		OccupancyRate:   occupancy,
		PeopleAssisted:  peopleAssistedBase + peopleAssistedPerShelter*len(shelters),
	}
}

// ComputeCatalog is Compute over the catalog's shelters plus relief camp
// and emergency contact counts.
func ComputeCatalog(cat *catalog.Catalog) models.Statistics {
	s := Compute(cat.Shelters())
	s.ReliefCamps = len(cat.ReliefCamps())
	s.EmergencyContacts = cat.ContactCount()
	return s
}
