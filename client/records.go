package client

import (
	"context"
	"net/http"
)

// ListRecords returns records whose name or area contains query,
// case-insensitively. An empty query lists everything, newest first.
func (c *Client) ListRecords(ctx context.Context, query string) ([]Record, error) {
	var out struct {
		Records []Record `json:"records"`
		Count   int      `json:"count"`
	}
	req := c.request(ctx).SetResult(&out)
	if query != "" {
		req.SetQueryParam("q", query)
	}
	resp, err := req.Get("/api/records")
	if err := do("list_records", resp, err, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Records, nil
}

func (c *Client) CreateRecord(ctx context.Context, draft RecordDraft) (CreateResult, error) {
	var out CreateResult
	resp, err := c.request(ctx).SetBody(draft).SetResult(&out).Post("/api/records")
	if err := do("create_record", resp, err, http.StatusCreated); err != nil {
		return CreateResult{}, err
	}
	return out, nil
}

func (c *Client) GetRecord(ctx context.Context, id string) (Record, error) {
	var out Record
	resp, err := c.request(ctx).SetPathParam("recordId", id).SetResult(&out).Get("/api/records/{recordId}")
	if err := do("get_record", resp, err, http.StatusOK); err != nil {
		return Record{}, err
	}
	return out, nil
}

func (c *Client) Dashboard(ctx context.Context) (Dashboard, error) {
	var out Dashboard
	resp, err := c.request(ctx).SetResult(&out).Get("/api/dashboard")
	if err := do("dashboard", resp, err, http.StatusOK); err != nil {
		return Dashboard{}, err
	}
	return out, nil
}
