package database

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"floodaid/internal/catalog"
	"floodaid/internal/models"
)

var catalogTables = []string{"shelters", "contacts", "medical_tips", "relief_camps", "donation_needs", "safety_tips"}

type rowBatch struct {
	table  string
	insert string
	rows   [][]interface{}
}

// catalogRows flattens the catalog into insert arguments per table
func catalogRows(d catalog.Data) []rowBatch {
	shelters := rowBatch{
		table:  "shelters",
		insert: `INSERT INTO shelters (position, name, address, capacity, available, facilities, phone) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	}
	for i, s := range d.Shelters {
		shelters.rows = append(shelters.rows, []interface{}{i, s.Name, s.Address, s.Capacity, s.Available, encodeList(s.Facilities), s.Phone})
	}

	contacts := rowBatch{
		table:  "contacts",
		insert: `INSERT INTO contacts (category_position, category, position, name, number, availability) VALUES (?, ?, ?, ?, ?, ?)`,
	}
	for gi, g := range d.ContactGroups {
		for ci, c := range g.Contacts {
			contacts.rows = append(contacts.rows, []interface{}{gi, g.Category, ci, c.Name, c.Number, c.Availability})
		}
	}

	tips := rowBatch{
		table:  "medical_tips",
		insert: `INSERT INTO medical_tips (position, title, description, priority) VALUES (?, ?, ?, ?)`,
	}
	for i, t := range d.MedicalTips {
		tips.rows = append(tips.rows, []interface{}{i, t.Title, t.Description, string(t.Priority)})
	}

	camps := rowBatch{
		table:  "relief_camps",
		insert: `INSERT INTO relief_camps (position, name, city, supplies, contact, open_hours) VALUES (?, ?, ?, ?, ?, ?)`,
	}
	for i, c := range d.ReliefCamps {
		camps.rows = append(camps.rows, []interface{}{i, c.Name, c.City, encodeList(c.Supplies), c.Contact, c.OpenHours})
	}

	needs := rowBatch{
		table:  "donation_needs",
		insert: `INSERT INTO donation_needs (position, item, priority, quantity, urgency) VALUES (?, ?, ?, ?, ?)`,
	}
	for i, n := range d.DonationNeeds {
		needs.rows = append(needs.rows, []interface{}{i, n.Item, string(n.Priority), n.Quantity, n.Urgency})
	}

	safety := rowBatch{
		table:  "safety_tips",
		insert: `INSERT INTO safety_tips (phase_position, phase, position, tip) VALUES (?, ?, ?, ?)`,
	}
	for pi, p := range d.SafetyPhases {
		for ti, tip := range p.Tips {
			safety.rows = append(safety.rows, []interface{}{pi, p.Phase, ti, tip})
		}
	}

	return []rowBatch{shelters, contacts, tips, camps, needs, safety}
}

func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return string(data)
}

func decodeList(raw string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, eris.Wrapf(err, "decode list %q", raw)
	}
	return items, nil
}

// groupedRow is one row of a table that stores a two-level list
type groupedRow struct {
	group string
	item  string
	extra [2]string
}

// groupContacts rebuilds contact groups from rows ordered by category then position
func groupContacts(rows []groupedRow) []models.ContactGroup {
	var groups []models.ContactGroup
	for _, r := range rows {
		if len(groups) == 0 || groups[len(groups)-1].Category != r.group {
			groups = append(groups, models.ContactGroup{Category: r.group})
		}
		last := &groups[len(groups)-1]
		last.Contacts = append(last.Contacts, models.Contact{Name: r.item, Number: r.extra[0], Availability: r.extra[1]})
	}
	return groups
}

// groupSafetyTips rebuilds safety phases from rows ordered by phase then position
func groupSafetyTips(rows []groupedRow) []models.SafetyPhase {
	var phases []models.SafetyPhase
	for _, r := range rows {
		if len(phases) == 0 || phases[len(phases)-1].Phase != r.group {
			phases = append(phases, models.SafetyPhase{Phase: r.group})
		}
		last := &phases[len(phases)-1]
		last.Tips = append(last.Tips, r.item)
	}
	return phases
}

func (db *DB) loadShelters(ctx context.Context) ([]models.Shelter, error) {
	rows, err := db.query(ctx, "shelters", `SELECT name, address, capacity, available, facilities, phone FROM shelters ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var shelters []models.Shelter
	for rows.Next() {
		var s models.Shelter
		var facilities string
		if err := rows.Scan(&s.Name, &s.Address, &s.Capacity, &s.Available, &facilities, &s.Phone); err != nil {
			return nil, eris.Wrap(err, "database: scan shelter")
		}
		if s.Facilities, err = decodeList(facilities); err != nil {
			return nil, eris.Wrapf(err, "database: shelter %s facilities", s.Name)
		}
		shelters = append(shelters, s)
	}
	return shelters, rows.Err()
}

func (db *DB) loadContactGroups(ctx context.Context) ([]models.ContactGroup, error) {
	rows, err := db.query(ctx, "contacts", `SELECT category, name, number, availability FROM contacts ORDER BY category_position, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var flat []groupedRow
	for rows.Next() {
		var r groupedRow
		if err := rows.Scan(&r.group, &r.item, &r.extra[0], &r.extra[1]); err != nil {
			return nil, eris.Wrap(err, "database: scan contact")
		}
		flat = append(flat, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groupContacts(flat), nil
}

func (db *DB) loadMedicalTips(ctx context.Context) ([]models.MedicalTip, error) {
	rows, err := db.query(ctx, "medical_tips", `SELECT title, description, priority FROM medical_tips ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var tips []models.MedicalTip
	for rows.Next() {
		var t models.MedicalTip
		if err := rows.Scan(&t.Title, &t.Description, &t.Priority); err != nil {
			return nil, eris.Wrap(err, "database: scan medical tip")
		}
		tips = append(tips, t)
	}
	return tips, rows.Err()
}

func (db *DB) loadReliefCamps(ctx context.Context) ([]models.ReliefCamp, error) {
	rows, err := db.query(ctx, "relief_camps", `SELECT name, city, supplies, contact, open_hours FROM relief_camps ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var camps []models.ReliefCamp
	for rows.Next() {
		var c models.ReliefCamp
		var supplies string
		if err := rows.Scan(&c.Name, &c.City, &supplies, &c.Contact, &c.OpenHours); err != nil {
			return nil, eris.Wrap(err, "database: scan relief camp")
		}
		if c.Supplies, err = decodeList(supplies); err != nil {
			return nil, eris.Wrapf(err, "database: relief camp %s supplies", c.Name)
		}
		camps = append(camps, c)
	}
	return camps, rows.Err()
}

func (db *DB) loadDonationNeeds(ctx context.Context) ([]models.DonationNeed, error) {
	rows, err := db.query(ctx, "donation_needs", `SELECT item, priority, quantity, urgency FROM donation_needs ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var needs []models.DonationNeed
	for rows.Next() {
		var n models.DonationNeed
		if err := rows.Scan(&n.Item, &n.Priority, &n.Quantity, &n.Urgency); err != nil {
			return nil, eris.Wrap(err, "database: scan donation need")
		}
		needs = append(needs, n)
	}
	return needs, rows.Err()
}

func (db *DB) loadSafetyPhases(ctx context.Context) ([]models.SafetyPhase, error) {
	rows, err := db.query(ctx, "safety_tips", `SELECT phase, tip FROM safety_tips ORDER BY phase_position, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var flat []groupedRow
	for rows.Next() {
		var r groupedRow
		if err := rows.Scan(&r.group, &r.item); err != nil {
			return nil, eris.Wrap(err, "database: scan safety tip")
		}
		flat = append(flat, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groupSafetyTips(flat), nil
}
