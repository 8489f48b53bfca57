package client

import (
	"context"
	"fmt"
	"net/url"

	"atelier/pkg/model"
)

type AvailabilityClient struct {
	httpClient *HttpClient
}

func NewAvailabilityClient(baseUrl string) *AvailabilityClient {
	return &AvailabilityClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *AvailabilityClient) GetAvailability(ctx context.Context, studioID string) (*Response, error) {
	q := url.Values{}
	q.Set("studio_id", studioID)
	return c.httpClient.GET(ctx, "/api/v1/availability?"+q.Encode())
}

func (c *AvailabilityClient) GetDates(ctx context.Context, studioID, from string, days int) (*Response, error) {
	q := url.Values{}
	q.Set("studio_id", studioID)
	if from != "" {
		q.Set("from", from)
	}
	if days > 0 {
		q.Set("days", fmt.Sprintf("%d", days))
	}
	return c.httpClient.GET(ctx, "/api/v1/availability/dates?"+q.Encode())
}

func (c *AvailabilityClient) GetSlots(ctx context.Context, studioID, date string) (*Response, error) {
	q := url.Values{}
	q.Set("studio_id", studioID)
	q.Set("date", date)
	return c.httpClient.GET(ctx, "/api/v1/availability/slots?"+q.Encode())
}

func (c *AvailabilityClient) CreateSchedule(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/schedules", body)
}

func (c *AvailabilityClient) DecodeAvailability(resp *Response) (*model.StudioAvailability, error) {
	var wrapper struct {
		Data *model.StudioAvailability `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode availability: %w", err)
	}
	if wrapper.Data == nil {
		return nil, fmt.Errorf("availability response has no data")
	}
	return wrapper.Data, nil
}

func (c *AvailabilityClient) DecodeDates(resp *Response) ([]string, error) {
	var wrapper struct {
		Data []string `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode dates: %w", err)
	}
	return wrapper.Data, nil
}
