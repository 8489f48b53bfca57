package client

import (
	"context"
	"fmt"
	"net/url"

	"atelier/pkg/model"
)

type CatalogClient struct {
	httpClient *HttpClient
}

func NewCatalogClient(baseUrl string) *CatalogClient {
	return &CatalogClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *CatalogClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/services", body)
}

func (c *CatalogClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/services/"+url.PathEscape(id))
}

func (c *CatalogClient) Search(ctx context.Context, studioID string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("studio_id", studioID)
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	return c.httpClient.GET(ctx, "/api/v1/services?"+q.Encode())
}

func (c *CatalogClient) DecodeService(resp *Response) (*model.ServiceOffering, error) {
	var wrapper struct {
		Data *model.ServiceOffering `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode service offering: %w", err)
	}
	if wrapper.Data == nil {
		return nil, fmt.Errorf("service offering response has no data")
	}
	return wrapper.Data, nil
}

func (c *CatalogClient) DecodeServices(resp *Response) ([]*model.ServiceOffering, int64, error) {
	var wrapper struct {
		Data       []*model.ServiceOffering `json:"data"`
		TotalCount int64                    `json:"total_count"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, 0, fmt.Errorf("failed to decode service offerings: %w", err)
	}
	return wrapper.Data, wrapper.TotalCount, nil
}
