package csv_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	exportCSV "github.com/pintwise/pintwise/internal/export/csv"
	"github.com/pintwise/pintwise/internal/export/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	yes := true
	snapshot := &types.Snapshot{
		At: time.Date(2025, 6, 6, 20, 0, 0, 0, time.UTC),
		Pubs: []*types.PubRecord{
			{ID: 1, Name: `The "Red" Lion, Camden`, TimeZone: "Europe/London"},
		},
		Amenities: []*types.AmenityRecord{
			{PubID: 1, Key: "wifi", Value: &yes, Yes: 4, No: 1},
			{PubID: 1, Key: "pool_table", Yes: 1},
		},
		Prices: []*types.PriceRecord{
			{ID: 3, PubID: 1, Targeting: "single", Amount: 550, Confidence: "high", RecentAccurate: 3, Upvotes: 2},
			{
				ID: 4, PubID: 1, Targeting: "all_pints", Amount: 400, IsDeal: true,
				DealType: "drink", DealStatus: "expired", Confidence: "low",
			},
		},
	}

	dir := t.TempDir()
	require.NoError(t, exportCSV.New(dir).Export(snapshot))

	pubs := readCSV(t, filepath.Join(dir, "pubs.csv"))
	require.Len(t, pubs, 2)
	assert.Equal(t, []string{"id", "name", "time_zone", "permanently_closed"}, pubs[0])
	assert.Equal(t, []string{"1", `The "Red" Lion, Camden`, "Europe/London", "false"}, pubs[1])

	amenities := readCSV(t, filepath.Join(dir, "amenities.csv"))
	require.Len(t, amenities, 3)
	assert.Equal(t, []string{"1", "wifi", "true", "4", "1"}, amenities[1])
	assert.Equal(t, []string{"1", "pool_table", "", "1", "0"}, amenities[2])

	prices := readCSV(t, filepath.Join(dir, "prices.csv"))
	require.Len(t, prices, 3)
	assert.Equal(t, []string{"3", "1", "single", "550", "false", "", "", "false", "high", "3", "2", "0"}, prices[1])
	assert.Equal(t, "drink", prices[2][5])
	assert.Equal(t, "expired", prices[2][6])
}

func TestExporter_ReplacesExistingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pubs.csv"), []byte("stale,data\nmore,rows\nand,more\n"), 0o600))

	snapshot := &types.Snapshot{Pubs: []*types.PubRecord{{ID: 9, Name: "The Anchor", TimeZone: "UTC"}}}
	require.NoError(t, exportCSV.New(dir).Export(snapshot))

	pubs := readCSV(t, filepath.Join(dir, "pubs.csv"))
	require.Len(t, pubs, 2)
	assert.Equal(t, "9", pubs[1][0])
}

func TestExporter_MissingDirectory(t *testing.T) {
	t.Parallel()

	err := exportCSV.New(filepath.Join(t.TempDir(), "missing")).Export(&types.Snapshot{})
	require.Error(t, err)
}
