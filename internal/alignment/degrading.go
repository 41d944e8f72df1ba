package alignment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Degrading wraps a primary scorer with a per-call timeout and substitutes
// the rule-based result on any failure. Its Score never returns an error:
// a bad AI call degrades one candidate's score quality, it does not abort
// the feed.
type Degrading struct {
	primary  Scorer
	fallback *RuleBased
	timeout  time.Duration
	logger   *zap.Logger
}

// NewDegrading builds the wrapper. A nil primary (no API key configured)
// routes every call straight to the fallback.
func NewDegrading(primary Scorer, timeout time.Duration, logger *zap.Logger) *Degrading {
	return &Degrading{
		primary:  primary,
		fallback: NewRuleBased(),
		timeout:  timeout,
		logger:   logger,
	}
}

func (d *Degrading) Score(ctx context.Context, req Request) (Result, error) {
	// Nothing for the model to reason about without goals text.
	if d.primary == nil || strings.TrimSpace(req.Goals) == "" {
		return d.fallback.Score(ctx, req)
	}

	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	res, err := d.primary.Score(callCtx, req)
	if err != nil {
		d.logger.Warn("goal alignment call failed, using fallback",
			zap.String("mentor", req.Mentor.Name),
			zap.Error(err),
		)
		return d.fallback.Score(ctx, req)
	}

	if res.Score < 0 || res.Score > 1 {
		d.logger.Warn("goal alignment score out of range, using fallback",
			zap.Float64("score", res.Score),
		)
		return d.fallback.Score(ctx, req)
	}

	return res, nil
}
