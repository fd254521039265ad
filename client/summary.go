package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const summaryPath = "/api/records/{recordId}/summary"

// StartSummary launches a summary for record id. A summary already running
// for that record returns its task together with ErrConflict.
func (c *Client) StartSummary(ctx context.Context, id string) (SummaryTask, error) {
	return c.startSummary(ctx, id, false)
}

// Summarize starts a summary and waits for its text in one call.
func (c *Client) Summarize(ctx context.Context, id string) (SummaryTask, error) {
	return c.startSummary(ctx, id, true)
}

func (c *Client) startSummary(ctx context.Context, id string, wait bool) (SummaryTask, error) {
	var out SummaryTask
	req := c.request(ctx).SetPathParam("recordId", id).SetResult(&out).SetError(&out)
	if wait {
		req.SetQueryParam("wait", "true")
	}
	resp, err := req.Post(summaryPath)
	if err := do("start_summary", resp, err, http.StatusAccepted, http.StatusOK); err != nil {
		return out, err
	}
	return out, nil
}

func (c *Client) SummaryStatus(ctx context.Context, id string) (SummaryTask, error) {
	var out SummaryTask
	resp, err := c.request(ctx).SetPathParam("recordId", id).SetResult(&out).Get(summaryPath)
	if err := do("summary_status", resp, err, http.StatusOK); err != nil {
		return SummaryTask{}, err
	}
	return out, nil
}

// DismissSummary clears a finished summary. Dismissing a running one fails
// with ErrConflict and leaves it running.
func (c *Client) DismissSummary(ctx context.Context, id string) error {
	resp, err := c.request(ctx).SetPathParam("recordId", id).Delete(summaryPath)
	return do("dismiss_summary", resp, err, http.StatusNoContent)
}

var errStillRunning = errors.New("summary still in flight")

// AwaitSummary polls until the summary for id is no longer in flight or ctx
// is done.
func (c *Client) AwaitSummary(ctx context.Context, id string, interval time.Duration) (SummaryTask, error) {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	var task SummaryTask
	err := backoff.Retry(func() error {
		t, err := c.SummaryStatus(ctx, id)
		if err != nil {
			return backoff.Permanent(err)
		}
		task = t
		if t.State == SummaryInFlight {
			return errStillRunning
		}
		return nil
	}, backoff.WithContext(backoff.NewConstantBackOff(interval), ctx))
	return task, err
}
