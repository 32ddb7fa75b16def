package engine

import (
	"context"
	"errors"
	"time"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/store"
	"github.com/sirupsen/logrus"
)

// SweepResult is the outcome of one auction visited by Sweep.
type SweepResult struct {
	ItemID string `json:"item_id"`
	Action string `json:"action"`
	Error  string `json:"error,omitempty"`
}

// Sweep settles every auction that ended before now: finalized when the
// reserve is met, voided once expired otherwise. Auctions that cannot settle
// yet are skipped. Each settlement is its own request.
func (e *Engine) Sweep(ctx context.Context, sender string, now time.Time) ([]SweepResult, error) {
	var (
		results []SweepResult
		after   *store.Cursor
	)

	for {
		page, err := e.AuctionsByEndTime(ctx, ListQuery{After: after, Limit: store.MaxLimit})
		if err != nil {
			return results, err
		}
		if len(page) == 0 {
			return results, nil
		}

		cfg, err := e.Config(ctx)
		if err != nil {
			return results, err
		}

		for _, a := range page {
			if a.EndTime.After(now) {
				return results, nil
			}
			after = store.CursorFor(store.IndexEndTime, a)

			var op Operation
			status := auction.StatusAt(a, now, cfg.ClosedDuration)
			switch {
			case a.ReservePriceMet():
				op = &FinalizeAuction{ItemID: a.ItemID}
			case status == auction.StatusExpired:
				op = &VoidAuction{ItemID: a.ItemID}
			default:
				continue
			}

			res := SweepResult{ItemID: a.ItemID, Action: op.Name()}
			if _, err := e.Apply(ctx, Request{Sender: sender, Now: now, Msg: op}); err != nil {
				if errors.Is(err, context.Canceled) {
					return results, err
				}
				res.Error = err.Error()
				e.log.WithFields(logrus.Fields{"item_id": a.ItemID, "action": res.Action}).WithError(err).Warn("Sweep failed to settle auction")
			}
			results = append(results, res)
		}
	}
}
