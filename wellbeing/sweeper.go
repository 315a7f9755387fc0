package wellbeing

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// RunSweeper evaluates every employee on each tick until ctx is cancelled.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.WithField("interval", interval).Info("Starting periodic wellbeing sweep")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stopping periodic wellbeing sweep")
			return
		case <-ticker.C:
			summary, err := s.Sweep(ctx)
			if err != nil {
				s.logger.WithError(err).Warn("Sweep interrupted")
				continue
			}
			s.logger.WithFields(logrus.Fields{
				"evaluated": summary.Evaluated,
				"alerted":   summary.Alerted,
				"failed":    summary.Failed,
			}).Info("Sweep complete")
		}
	}
}
