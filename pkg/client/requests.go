package client

import (
	"context"
	"fmt"
	"net/url"

	"atelier/pkg/model"
)

type RequestClient struct {
	httpClient *HttpClient
}

func NewRequestClient(baseUrl string) *RequestClient {
	return &RequestClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *RequestClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/requests", body)
}

func (c *RequestClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/requests/"+url.PathEscape(id))
}

func (c *RequestClient) Search(ctx context.Context, studioID, status string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("studio_id", studioID)
	if status != "" {
		q.Set("status", status)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	return c.httpClient.GET(ctx, "/api/v1/requests?"+q.Encode())
}

func (c *RequestClient) UpdateStatus(ctx context.Context, id string, body any) (*Response, error) {
	return c.httpClient.PATCH(ctx, "/api/v1/requests/"+url.PathEscape(id), body)
}

func (c *RequestClient) DecodeRequest(resp *Response) (*model.BookingRequest, error) {
	var wrapper struct {
		Data *model.BookingRequest `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode booking request: %w", err)
	}
	if wrapper.Data == nil {
		return nil, fmt.Errorf("booking request response has no data")
	}
	return wrapper.Data, nil
}

func (c *RequestClient) DecodeRequests(resp *Response) ([]*model.BookingRequest, int64, error) {
	var wrapper struct {
		Data       []*model.BookingRequest `json:"data"`
		TotalCount int64                   `json:"total_count"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, 0, fmt.Errorf("failed to decode booking requests: %w", err)
	}
	return wrapper.Data, wrapper.TotalCount, nil
}
