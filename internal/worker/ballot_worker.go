package worker

import (
	"context"
	"log/slog"

	"github.com/DiegxRG/E-Vote/internal/metrics"
)

// BallotEvent is emitted after a ballot has been stored.
type BallotEvent struct {
	ElectionID string
	UserID     string
	Offices    int
	Blank      int
}

type BallotWorker struct {
	Ch     <-chan BallotEvent
	logger *slog.Logger
}

func NewBallotWorker(ch <-chan BallotEvent, logger *slog.Logger) *BallotWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &BallotWorker{Ch: ch, logger: logger}
}

// Run consumes events until ctx is done or the channel is closed.
func (w *BallotWorker) Run(ctx context.Context) {
	w.logger.Info("ballot worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("ballot worker stopped")
			return
		case ev, ok := <-w.Ch:
			if !ok {
				w.logger.Info("ballot worker stopped", "reason", "channel closed")
				return
			}
			metrics.ObserveBallot(ev.ElectionID, ev.Blank)
			w.logger.Info("ballot cast",
				"election_id", ev.ElectionID,
				"user_id", ev.UserID,
				"offices", ev.Offices,
				"blank", ev.Blank,
			)
		}
	}
}
