package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pintwise/pintwise/internal/export/types"
)

// Exporter handles exporting snapshots to csv files.
type Exporter struct {
	outDir string
}

// New creates a new csv exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes pubs, amenities and prices to separate csv files.
func (e *Exporter) Export(snapshot *types.Snapshot) error {
	if err := writeFile(e.outDir, "pubs.csv",
		[]string{"id", "name", "time_zone", "permanently_closed"},
		snapshot.Pubs, func(p *types.PubRecord) []string {
			return []string{
				strconv.FormatInt(p.ID, 10), p.Name, p.TimeZone, strconv.FormatBool(p.PermanentlyClosed),
			}
		}); err != nil {
		return fmt.Errorf("failed to export pubs: %w", err)
	}

	if err := writeFile(e.outDir, "amenities.csv",
		[]string{"pub_id", "key", "value", "yes", "no"},
		snapshot.Amenities, func(a *types.AmenityRecord) []string {
			value := ""
			if a.Value != nil {
				value = strconv.FormatBool(*a.Value)
			}
			return []string{
				strconv.FormatInt(a.PubID, 10), a.Key, value, strconv.Itoa(a.Yes), strconv.Itoa(a.No),
			}
		}); err != nil {
		return fmt.Errorf("failed to export amenities: %w", err)
	}

	if err := writeFile(e.outDir, "prices.csv",
		[]string{
			"id", "pub_id", "targeting", "amount", "is_deal", "deal_type", "deal_status", "starts_later",
			"confidence", "recent_accurate", "upvotes", "downvotes",
		},
		snapshot.Prices, func(p *types.PriceRecord) []string {
			dealType, dealStatus := "", ""
			if p.IsDeal {
				dealType, dealStatus = p.DealType, p.DealStatus
			}
			return []string{
				strconv.FormatInt(p.ID, 10),
				strconv.FormatInt(p.PubID, 10),
				p.Targeting,
				strconv.FormatInt(p.Amount, 10),
				strconv.FormatBool(p.IsDeal),
				dealType,
				dealStatus,
				strconv.FormatBool(p.StartsLater),
				p.Confidence,
				strconv.Itoa(p.RecentAccurate),
				strconv.FormatInt(int64(p.Upvotes), 10),
				strconv.FormatInt(int64(p.Downvotes), 10),
			}
		}); err != nil {
		return fmt.Errorf("failed to export prices: %w", err)
	}

	return nil
}

// writeFile writes records to a csv file, replacing any existing one.
func writeFile[T any](outDir, filename string, header []string, records []T, row func(T) []string) error {
	file, err := os.Create(filepath.Join(outDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	// Create CSV writer
	writer := csv.NewWriter(file)

	// Write header
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// Write each record
	for _, record := range records {
		if err := writer.Write(row(record)); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
