package variant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"niaga-be/internal/logger"

	"go.uber.org/zap"
)

// Creator is the slice of the store the writer needs.
type Creator interface {
	Create(ctx context.Context, v *Variant) (*Variant, error)
}

// Writer hands a validated batch to a store that enforces a
// request-rate ceiling. Creates are strictly serialized through a
// limiter — never fanned out — and a rate-limit response backs off
// with increasing delay before retrying instead of abandoning the
// batch. The batch was fully validated up front, so any persistent
// failure here is an infrastructure problem, not a data problem.
type Writer struct {
	store       Creator
	limiter     *rate.Limiter
	maxRetries  int
	baseBackoff time.Duration
}

func NewWriter(store Creator, rps float64, burst, maxRetries int) *Writer {
	if burst < 1 {
		burst = 1
	}
	return &Writer{
		store:       store,
		limiter:     rate.NewLimiter(rate.Limit(rps), burst),
		maxRetries:  maxRetries,
		baseBackoff: time.Second,
	}
}

// PersistBatch creates the variants one by one, in order. On failure
// it returns the variants created so far along with the error, so the
// caller knows where the batch stopped.
func (w *Writer) PersistBatch(ctx context.Context, variants []*Variant) ([]*Variant, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "writer"),
		zap.Int("batch_size", len(variants)),
	)

	start := time.Now()
	created := make([]*Variant, 0, len(variants))

	for i, v := range variants {
		if err := w.limiter.Wait(ctx); err != nil {
			return created, err
		}

		out, err := w.createWithRetry(ctx, v)
		if err != nil {
			log.Error("batch persistence aborted",
				zap.Int("persisted", len(created)),
				zap.Int("failed_index", i),
				zap.String("sku", v.SKU),
				zap.Error(err),
			)
			return created, fmt.Errorf("failed to persist variant %d (%s): %w", i, v.SKU, err)
		}
		created = append(created, out)
	}

	log.Info("batch persisted",
		zap.Int("count", len(created)),
		zap.Duration("duration", time.Since(start)),
	)
	return created, nil
}

func (w *Writer) createWithRetry(ctx context.Context, v *Variant) (*Variant, error) {
	delay := w.baseBackoff

	for attempt := 0; ; attempt++ {
		out, err := w.store.Create(ctx, v)
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, ErrRateLimited) || attempt >= w.maxRetries {
			return nil, err
		}

		logger.FromCtx(ctx).Warn("rate limited, backing off",
			zap.String("sku", v.SKU),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
