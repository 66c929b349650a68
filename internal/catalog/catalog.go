// Package catalog holds the static reference data served by FloodAid:
// shelters, emergency contacts, medical tips, relief camps, donation needs
// and safety guidelines.
//
// A Catalog is built once at startup and never mutated afterwards. Every
// accessor returns a copy, so callers may modify what they receive without
// affecting other readers.
package catalog

import (
	"strings"

	"floodaid/internal/models"
)

// Data is the raw content used to build a Catalog
type Data struct {
	Shelters      []models.Shelter
	ContactGroups []models.ContactGroup
	MedicalTips   []models.MedicalTip
	ReliefCamps   []models.ReliefCamp
	DonationNeeds []models.DonationNeed
	SafetyPhases  []models.SafetyPhase
}

// Catalog is an immutable reference data store
type Catalog struct {
	data Data
}

// New builds a Catalog from a deep copy of data
func New(data Data) *Catalog {
	return &Catalog{data: copyData(data)}
}

// Data returns a deep copy of the catalog content
func (c *Catalog) Data() Data {
	return copyData(c.data)
}

// Shelters returns every shelter
func (c *Catalog) Shelters() []models.Shelter {
	return copyShelters(c.data.Shelters)
}

// ContactGroups returns the contact categories in display order
func (c *Catalog) ContactGroups() []models.ContactGroup {
	return copyContactGroups(c.data.ContactGroups)
}

// MedicalTips returns every medical tip
func (c *Catalog) MedicalTips() []models.MedicalTip {
	return append([]models.MedicalTip(nil), c.data.MedicalTips...)
}

// ReliefCamps returns every relief camp
func (c *Catalog) ReliefCamps() []models.ReliefCamp {
	return copyReliefCamps(c.data.ReliefCamps)
}

// DonationNeeds returns every donation need
func (c *Catalog) DonationNeeds() []models.DonationNeed {
	return append([]models.DonationNeed(nil), c.data.DonationNeeds...)
}

// SafetyPhases returns the safety tips of all phases in display order
func (c *Catalog) SafetyPhases() []models.SafetyPhase {
	return copySafetyPhases(c.data.SafetyPhases)
}

// SafetyTips returns the tips for one phase, matched case-insensitively
func (c *Catalog) SafetyTips(phase string) ([]string, bool) {
	for _, p := range c.data.SafetyPhases {
		if strings.EqualFold(p.Phase, phase) {
			return append([]string(nil), p.Tips...), true
		}
	}
	return nil, false
}

// SheltersIn returns shelters whose address contains city (case-insensitive)
func (c *Catalog) SheltersIn(city string) []models.Shelter {
	needle := strings.ToLower(city)
	var out []models.Shelter
	for _, s := range c.data.Shelters {
		if strings.Contains(strings.ToLower(s.Address), needle) {
			out = append(out, copyShelter(s))
		}
	}
	return out
}

// NearestShelter returns the first shelter whose address mentions city.
// There are no coordinates in the catalog, so "nearest" means "in the same city".
func (c *Catalog) NearestShelter(city string) (models.Shelter, bool) {
	needle := strings.ToLower(city)
	for _, s := range c.data.Shelters {
		if strings.Contains(strings.ToLower(s.Address), needle) {
			return copyShelter(s), true
		}
	}
	return models.Shelter{}, false
}

// ReliefCampsIn returns relief camps located in city (case-insensitive)
func (c *Catalog) ReliefCampsIn(city string) []models.ReliefCamp {
	var out []models.ReliefCamp
	for _, rc := range c.data.ReliefCamps {
		if strings.EqualFold(rc.City, city) {
			rc.Supplies = append([]string(nil), rc.Supplies...)
			out = append(out, rc)
		}
	}
	return out
}

// DonationNeedsByPriority returns the needs with priority p (case-insensitive)
func (c *Catalog) DonationNeedsByPriority(p models.Priority) []models.DonationNeed {
	var out []models.DonationNeed
	for _, d := range c.data.DonationNeeds {
		if strings.EqualFold(string(d.Priority), string(p)) {
			out = append(out, d)
		}
	}
	return out
}

// ContactCount returns the number of contacts across all groups
func (c *Catalog) ContactCount() int {
	n := 0
	for _, g := range c.data.ContactGroups {
		n += len(g.Contacts)
	}
	return n
}

func copyData(d Data) Data {
	return Data{
		Shelters:      copyShelters(d.Shelters),
		ContactGroups: copyContactGroups(d.ContactGroups),
		MedicalTips:   append([]models.MedicalTip(nil), d.MedicalTips...),
		ReliefCamps:   copyReliefCamps(d.ReliefCamps),
		DonationNeeds: append([]models.DonationNeed(nil), d.DonationNeeds...),
		SafetyPhases:  copySafetyPhases(d.SafetyPhases),
	}
}

func copyShelter(s models.Shelter) models.Shelter {
	s.Facilities = append([]string(nil), s.Facilities...)
	return s
}

func copyShelters(in []models.Shelter) []models.Shelter {
	if in == nil {
		return nil
	}
	out := make([]models.Shelter, len(in))
	for i, s := range in {
		out[i] = copyShelter(s)
	}
	return out
}

func copyContactGroups(in []models.ContactGroup) []models.ContactGroup {
	if in == nil {
		return nil
	}
	out := make([]models.ContactGroup, len(in))
	for i, g := range in {
		out[i] = models.ContactGroup{
			Category: g.Category,
			Contacts: append([]models.Contact(nil), g.Contacts...),
		}
	}
	return out
}

func copyReliefCamps(in []models.ReliefCamp) []models.ReliefCamp {
	if in == nil {
		return nil
	}
	out := make([]models.ReliefCamp, len(in))
	for i, rc := range in {
		rc.Supplies = append([]string(nil), rc.Supplies...)
		out[i] = rc
	}
	return out
}

func copySafetyPhases(in []models.SafetyPhase) []models.SafetyPhase {
	if in == nil {
		return nil
	}
	out := make([]models.SafetyPhase, len(in))
	for i, p := range in {
		out[i] = models.SafetyPhase{Phase: p.Phase, Tips: append([]string(nil), p.Tips...)}
	}
	return out
}
