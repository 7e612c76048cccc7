package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// reconcilePageSize is the number of pubs reconciled per batch.
const reconcilePageSize = 200

// MaintenanceCommands returns the data consistency commands.
func MaintenanceCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "audit-counters",
			Usage: "Compare price vote and verification counters with their event rows",
			Description: `Recompute the vote and verification counters of every price from the
vote and verification rows and report prices whose stored counters drifted.

Examples:
  db audit-counters                   # Report up to 1000 drifted prices
  db audit-counters --limit 50        # Report at most 50
  db audit-counters --repair          # Rewrite the drifted counters`,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "repair",
					Usage: "Rewrite drifted counters from the event rows",
				},
				&cli.IntFlag{
					Name:  "limit",
					Usage: "Maximum number of drifted prices to handle",
					Value: 1000,
				},
			},
			Action: handleAuditCounters(deps),
		},
		{
			Name:  "reconcile-amenities",
			Usage: "Re-run amenity consensus for every pub",
			Description: `Apply the current consensus policy to every voted amenity of every pub.
Run this after changing the quorum or margins. Running it twice changes nothing.`,
			Action: handleReconcileAmenities(deps),
		},
	}
}

// handleAuditCounters handles the 'audit-counters' command.
func handleAuditCounters(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		audit := deps.DB.Service().Audit()
		limit := int(max(c.Int("limit"), 1))

		if !c.Bool("repair") {
			drift, err := audit.VerifyCounters(ctx, limit)
			if err != nil {
				return err
			}

			for _, d := range drift {
				deps.Logger.Warn("Counter drift",
					zap.Int64("priceID", d.PriceID),
					zap.Int32("storedUpvotes", d.StoredUpvotes),
					zap.Int32("actualUpvotes", d.ActualUpvotes),
					zap.Int32("storedDownvotes", d.StoredDownvotes),
					zap.Int32("actualDownvotes", d.ActualDownvotes),
					zap.Int32("storedVerifications", d.StoredVerificationCount),
					zap.Int32("actualVerifications", d.ActualVerificationCount))
			}

			deps.Logger.Info("Counter audit complete", zap.Int("drifted", len(drift)))
			return nil
		}

		drift, repaired, err := audit.RepairCounters(ctx, limit, time.Now())
		if err != nil {
			return err
		}

		deps.Logger.Info("Counter repair complete",
			zap.Int("drifted", len(drift)),
			zap.Int64("repaired", repaired))
		return nil
	}
}

// handleReconcileAmenities handles the 'reconcile-amenities' command.
func handleReconcileAmenities(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		pubs := deps.DB.Service().Pub()
		amenities := deps.DB.Service().Amenity()
		now := time.Now()

		var afterID int64
		var scanned, overwritten int
		for {
			page, err := pubs.List(ctx, afterID, reconcilePageSize)
			if err != nil {
				return err
			}
			if len(page) == 0 {
				break
			}

			ids := make([]int64, len(page))
			for i, pub := range page {
				ids[i] = pub.ID
			}

			n, err := amenities.ReconcilePubs(ctx, ids, now)
			if err != nil {
				return fmt.Errorf("failed to reconcile pubs after %d: %w", afterID, err)
			}

			scanned += len(page)
			overwritten += n
			afterID = ids[len(ids)-1]

			deps.Logger.Info("Reconciled batch",
				zap.Int64("lastPubID", afterID),
				zap.Int("overwritten", n))

			if len(page) < reconcilePageSize {
				break
			}
		}

		deps.Logger.Info("Amenity reconcile complete",
			zap.Int("pubs", scanned),
			zap.Int("overwritten", overwritten))
		return nil
	}
}
