// Package export writes offline snapshots of the derived truth of every pub.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pintwise/pintwise/internal/database"
	"github.com/pintwise/pintwise/internal/database/service"
	dbTypes "github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/export/csv"
	"github.com/pintwise/pintwise/internal/export/sqlite"
	"github.com/pintwise/pintwise/internal/export/types"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents a supported export format.
type Format string

const (
	FormatSQLite Format = "sqlite"
	FormatCSV    Format = "csv"
)

// pageSize is the number of pubs read per page.
const pageSize = 200

// Source reads the pubs and their derived state.
type Source interface {
	ListPubs(ctx context.Context, afterID int64, limit int) ([]*dbTypes.Pub, error)
	Claims(ctx context.Context, pubID int64) ([]*service.AmenityView, error)
	ListForPub(ctx context.Context, pubID int64, now time.Time) ([]*service.PriceView, error)
}

// serviceSource reads from the business services.
type serviceSource struct {
	pubs      *service.PubService
	amenities *service.AmenityService
	prices    *service.PriceService
}

// NewServiceSource reads the snapshot through the business services of a database client.
func NewServiceSource(svc *database.Service) Source {
	return &serviceSource{pubs: svc.Pub(), amenities: svc.Amenity(), prices: svc.Price()}
}

func (s *serviceSource) ListPubs(ctx context.Context, afterID int64, limit int) ([]*dbTypes.Pub, error) {
	return s.pubs.List(ctx, afterID, limit)
}

func (s *serviceSource) Claims(ctx context.Context, pubID int64) ([]*service.AmenityView, error) {
	return s.amenities.Claims(ctx, pubID)
}

func (s *serviceSource) ListForPub(ctx context.Context, pubID int64, now time.Time) ([]*service.PriceView, error) {
	return s.prices.ListForPub(ctx, pubID, now)
}

// Config holds the configuration for exports.
type Config struct {
	ExportVersion string    `json:"exportVersion"`
	Description   string    `json:"description"`
	At            time.Time `json:"at"`
	Concurrency   int       `json:"-"`
}

// Exporter handles exporting snapshots.
type Exporter struct {
	source  Source
	outDir  string
	config  *Config
	formats []Format
	logger  *zap.Logger
}

// New creates a new exporter instance writing the given formats.
func New(source Source, outDir string, config *Config, formats []Format, logger *zap.Logger) *Exporter {
	return &Exporter{
		source:  source,
		outDir:  outDir,
		config:  config,
		formats: formats,
		logger:  logger.Named("export"),
	}
}

// ExportAll builds the snapshot and writes it in every configured format.
func (e *Exporter) ExportAll(ctx context.Context) error {
	for _, format := range e.formats {
		if format != FormatSQLite && format != FormatCSV {
			return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
		}
	}

	e.logger.Info("Starting export",
		zap.Time("at", e.config.At),
		zap.Int("concurrency", e.config.Concurrency),
		zap.String("outDir", e.outDir),
		zap.String("exportVersion", e.config.ExportVersion),
		zap.String("engineVersion", types.EngineVersion))

	snapshot, err := e.Snapshot(ctx)
	if err != nil {
		return err
	}

	e.logger.Info("Snapshot built",
		zap.Int("pubs", len(snapshot.Pubs)),
		zap.Int("amenities", len(snapshot.Amenities)),
		zap.Int("prices", len(snapshot.Prices)))

	if err := e.writeConfig(); err != nil {
		return err
	}

	// Export each format
	for _, format := range e.formats {
		e.logger.Info("Writing format", zap.String("format", string(format)))

		if err := e.export(format, snapshot); err != nil {
			return fmt.Errorf("failed to export %s format: %w", format, err)
		}
	}

	e.logger.Info("Export completed", zap.String("outDir", e.outDir))
	return nil
}

// Snapshot reads every pub with its amenity flags and prices as of the configured instant.
func (e *Exporter) Snapshot(ctx context.Context) (*types.Snapshot, error) {
	snapshot := &types.Snapshot{At: e.config.At}

	var afterID int64
	for {
		pubs, err := e.source.ListPubs(ctx, afterID, pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list pubs: %w", err)
		}
		if len(pubs) == 0 {
			break
		}

		details, err := e.readDetails(ctx, pubs)
		if err != nil {
			return nil, err
		}

		for i, pub := range pubs {
			snapshot.Pubs = append(snapshot.Pubs, &types.PubRecord{
				ID:                pub.ID,
				Name:              pub.Name,
				TimeZone:          pub.TimeZone,
				PermanentlyClosed: pub.PermanentlyClosed,
			})
			snapshot.Amenities = append(snapshot.Amenities, details[i].amenities...)
			snapshot.Prices = append(snapshot.Prices, details[i].prices...)
		}

		afterID = pubs[len(pubs)-1].ID
		if len(pubs) < pageSize {
			break
		}
	}

	return snapshot, nil
}

type pubDetails struct {
	amenities []*types.AmenityRecord
	prices    []*types.PriceRecord
}

// readDetails loads the amenities and prices of a page of pubs concurrently, keeping page order.
func (e *Exporter) readDetails(ctx context.Context, pubs []*dbTypes.Pub) ([]pubDetails, error) {
	details := make([]pubDetails, len(pubs))

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(max(e.config.Concurrency, 1))

	for i, pub := range pubs {
		p.Go(func(ctx context.Context) error {
			claims, err := e.source.Claims(ctx, pub.ID)
			if err != nil {
				return fmt.Errorf("failed to read amenities of pub %d: %w", pub.ID, err)
			}

			views, err := e.source.ListForPub(ctx, pub.ID, e.config.At)
			if err != nil {
				return fmt.Errorf("failed to read prices of pub %d: %w", pub.ID, err)
			}

			details[i] = pubDetails{
				amenities: amenityRecords(pub.ID, claims),
				prices:    priceRecords(views),
			}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}

func amenityRecords(pubID int64, claims []*service.AmenityView) []*types.AmenityRecord {
	records := make([]*types.AmenityRecord, len(claims))
	for i, claim := range claims {
		records[i] = &types.AmenityRecord{
			PubID: pubID,
			Key:   claim.Amenity.String(),
			Value: claim.Value,
			Yes:   claim.Claim.Yes,
			No:    claim.Claim.No,
		}
	}
	return records
}

func priceRecords(views []*service.PriceView) []*types.PriceRecord {
	records := make([]*types.PriceRecord, len(views))
	for i, view := range views {
		price := view.Price
		record := &types.PriceRecord{
			ID:             price.ID,
			PubID:          price.PubID,
			Targeting:      price.TargetingKind.String(),
			Amount:         price.Amount,
			IsDeal:         price.IsDeal,
			Confidence:     view.Confidence.Level.String(),
			RecentAccurate: view.Confidence.RecentAccurate,
			Upvotes:        price.Upvotes,
			Downvotes:      price.Downvotes,
		}
		if price.IsDeal {
			record.DealType = price.DealType.String()
			record.DealStatus = view.DealStatus.String()
			record.StartsLater = view.StartsLater
		}
		records[i] = record
	}
	return records
}

// writeConfig saves the export configuration next to the snapshot files.
func (e *Exporter) writeConfig() error {
	jsonConfig := struct {
		*Config

		EngineVersion string `json:"engineVersion"`
	}{
		Config:        e.config,
		EngineVersion: types.EngineVersion,
	}

	configData, err := sonic.MarshalIndent(jsonConfig, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal export config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(e.outDir, "export_config.json"), configData, 0o600); err != nil {
		return fmt.Errorf("failed to write export config: %w", err)
	}
	return nil
}

// export handles exporting data in the specified format.
func (e *Exporter) export(format Format, snapshot *types.Snapshot) error {
	var exporter interface {
		Export(snapshot *types.Snapshot) error
	}

	switch format {
	case FormatSQLite:
		exporter = sqlite.New(e.outDir)
	case FormatCSV:
		exporter = csv.New(e.outDir)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return exporter.Export(snapshot)
}
