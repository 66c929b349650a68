package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShelterAvailabilityStatus(t *testing.T) {
	tests := []struct {
		name    string
		shelter Shelter
		want    string
	}{
		{name: "plenty of space", shelter: Shelter{Capacity: 600, Available: 350}, want: "good"},
		{name: "exactly 30 percent", shelter: Shelter{Capacity: 100, Available: 30}, want: "limited"},
		{name: "limited", shelter: Shelter{Capacity: 400, Available: 100}, want: "limited"},
		{name: "exactly 10 percent", shelter: Shelter{Capacity: 100, Available: 10}, want: "critical"},
		{name: "full", shelter: Shelter{Capacity: 100, Available: 0}, want: "critical"},
		{name: "zero capacity", shelter: Shelter{}, want: "critical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shelter.AvailabilityStatus())
		})
	}
}
