package pipeline

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/clubmap/internal/logger"
	"github.com/pfrederiksen/clubmap/internal/pace"
	"github.com/pfrederiksen/clubmap/internal/scraper"
)

// fetch fetches url. Every request, retries included, starts at least
// PageDelay after the previous request to the site ended; retries also wait
// RetryDelay. Transient fetch errors are retried up to the attempt bound; any
// other error ends the page at once. It returns the body, the number of
// attempts made and the last error.
func (p *Pipeline) fetch(ctx context.Context, url string) ([]byte, int, error) {
	var lastErr error
	for attempt := 1; attempt <= p.opts.Attempts; attempt++ {
		if attempt > 1 {
			logger.Debug("Retrying fetch", logger.Fields{
				"url":     url,
				"attempt": attempt,
				"delay":   p.opts.RetryDelay.String(),
			})
			if err := pace.Sleep(ctx, p.opts.RetryDelay); err != nil {
				return nil, attempt - 1, err
			}
		}
		if err := p.gap.Wait(ctx); err != nil {
			return nil, attempt - 1, err
		}

		body, err := p.fetcher.Fetch(ctx, url)
		p.gap.Done()
		if err == nil {
			logger.IncrCounter("pages.fetched")
			return body, attempt, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, attempt, ctxErr
		}

		lastErr = err
		logger.Warn("Fetch attempt failed", logger.Fields{
			"url":     url,
			"attempt": attempt,
			"error":   err.Error(),
		})
		if !scraper.IsFetchError(err) {
			logger.IncrCounter("pages.fetch_failed")
			return nil, attempt, fmt.Errorf("fetching %s: %w", url, err)
		}
	}

	logger.IncrCounter("pages.fetch_failed")
	return nil, p.opts.Attempts, fmt.Errorf("fetching %s after %d attempts: %w", url, p.opts.Attempts, lastErr)
}
