package domain

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadMockFlares(t *testing.T) []FlareRecord {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "mock", "donki_flr_2024-05.json"))
	require.NoError(t, err)

	var records []FlareRecord
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func TestFlareRecord_DecodeDONKI(t *testing.T) {
	records := loadMockFlares(t)
	require.Len(t, records, 7)

	first := records[0]
	assert.Equal(t, "2024-05-08T01:41:00-FLR-001", first.ID)
	assert.Equal(t, "X1.0", first.ClassType)
	assert.Equal(t, "S20W25", first.SourceLocation)
	assert.Equal(t, "2024-05-08T02:27Z", first.PeakTime)
	assert.Equal(t, RegionNumber("13664"), first.ActiveRegionNum)
	require.Len(t, first.Instruments, 1)
	assert.Equal(t, "GOES-P: EXIS 1.0-8.0", first.Instruments[0].DisplayName)
	require.Len(t, first.LinkedEvents, 1)
	assert.Equal(t, "2024-05-08T02:24:00-CME-001", first.LinkedEvents[0].ActivityID)
	assert.True(t, first.HasLocation())

	limb := records[5]
	assert.False(t, limb.HasLocation())
	assert.Empty(t, limb.ActiveRegionNum)
	assert.Empty(t, records[2].EndTime, "null endTime decodes empty")
}

func TestRegionNumber_JSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want RegionNumber
	}{
		{"integer", `13664`, "13664"},
		{"string", `"13664"`, "13664"},
		{"null", `null`, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var r RegionNumber
			require.NoError(t, json.Unmarshal([]byte(tc.in), &r))
			assert.Equal(t, tc.want, r)
		})
	}

	out, err := json.Marshal(struct {
		N RegionNumber `json:"n"`
		S RegionNumber `json:"s"`
		E RegionNumber `json:"e,omitempty"`
	}{N: "13664", S: "AR-x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":13664,"s":"AR-x"}`, string(out))

	var bad RegionNumber
	require.Error(t, json.Unmarshal([]byte(`{}`), &bad))
}
