package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Time logs an operation's duration when the returned func runs, typically
// via defer. The logger travels on the context; without one the call is a
// no-op (zerolog's disabled logger).
//
//	defer obs.Time(ctx, "scheduler.Rebalance")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	logger := zerolog.Ctx(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			logger.Error().Str("op", name).Dur("dur", dur).Err(*errp).Msg("operation failed")
			return
		}
		logger.Debug().Str("op", name).Dur("dur", dur).Msg("operation complete")
	}
}
