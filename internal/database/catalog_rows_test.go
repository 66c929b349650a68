package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floodaid/internal/catalog"
)

func TestCatalogRows_SeedCounts(t *testing.T) {
	data := catalog.Default().Data()
	batches := catalogRows(data)

	safetyTips := 0
	for _, p := range data.SafetyPhases {
		safetyTips += len(p.Tips)
	}

	want := map[string]int{
		"shelters":       10,
		"contacts":       10,
		"medical_tips":   6,
		"relief_camps":   6,
		"donation_needs": 10,
		"safety_tips":    safetyTips,
	}

	require.Len(t, batches, len(catalogTables))
	for i, b := range batches {
		assert.Equal(t, catalogTables[i], b.table)
		assert.Len(t, b.rows, want[b.table], b.table)
	}
}

func TestCatalogRows_ShelterColumns(t *testing.T) {
	batches := catalogRows(catalog.Default().Data())
	first := batches[0].rows[0]

	assert.Equal(t, 0, first[0])
	assert.Equal(t, "Lahore Central Relief Camp", first[1])
	assert.Equal(t, 500, first[3])
	assert.Equal(t, 200, first[4])
	assert.Equal(t, `["Medical","Food","Water","Sanitation"]`, first[5])
}

func TestGroupContacts_RoundTrip(t *testing.T) {
	data := catalog.Default().Data()

	var flat []groupedRow
	for _, args := range catalogRows(data)[1].rows {
		flat = append(flat, groupedRow{
			group: args[1].(string),
			item:  args[3].(string),
			extra: [2]string{args[4].(string), args[5].(string)},
		})
	}

	assert.Equal(t, data.ContactGroups, groupContacts(flat))
}

func TestGroupSafetyTips_RoundTrip(t *testing.T) {
	data := catalog.Default().Data()

	var flat []groupedRow
	for _, args := range catalogRows(data)[5].rows {
		flat = append(flat, groupedRow{group: args[1].(string), item: args[3].(string)})
	}

	assert.Equal(t, data.SafetyPhases, groupSafetyTips(flat))
}

func TestGroupContacts_Empty(t *testing.T) {
	assert.Nil(t, groupContacts(nil))
	assert.Nil(t, groupSafetyTips(nil))
}

func TestEncodeDecodeList(t *testing.T) {
	assert.Equal(t, "[]", encodeList(nil))

	items, err := decodeList(encodeList([]string{"Food", "Water"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Water"}, items)

	_, err = decodeList("not json")
	assert.Error(t, err)
}
