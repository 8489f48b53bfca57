package service

import (
	"context"
	"fmt"
	"net/http"

	flowerrors "atelier/internal/bookingflow/errors"
	"atelier/pkg/client"
	"atelier/pkg/model"
)

// The workflow talks to the rest of the system through exactly three
// collaborators: one read of the studio's schedule at session open, one
// read of the chosen service, and one create-request call on submit.

type AvailabilityFetcher interface {
	FetchAvailability(ctx context.Context, studioID string) (*model.StudioAvailability, error)
}

type CatalogReader interface {
	GetService(ctx context.Context, serviceID string) (*model.ServiceOffering, error)
}

type RequestSubmitter interface {
	SubmitRequest(ctx context.Context, input *model.BookingRequestInput) (*model.BookingRequest, error)
}

type httpAvailabilityFetcher struct {
	client *client.AvailabilityClient
}

func NewHTTPAvailabilityFetcher(c *client.AvailabilityClient) AvailabilityFetcher {
	return &httpAvailabilityFetcher{client: c}
}

func (f *httpAvailabilityFetcher) FetchAvailability(ctx context.Context, studioID string) (*model.StudioAvailability, error) {
	resp, err := f.client.GetAvailability(ctx, studioID)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("availability lookup failed: %s", client.GetErrorMessage(resp))
	}
	return f.client.DecodeAvailability(resp)
}

type httpCatalogReader struct {
	client *client.CatalogClient
}

func NewHTTPCatalogReader(c *client.CatalogClient) CatalogReader {
	return &httpCatalogReader{client: c}
}

func (r *httpCatalogReader) GetService(ctx context.Context, serviceID string) (*model.ServiceOffering, error) {
	resp, err := r.client.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("service %s not found", serviceID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service lookup failed: %s", client.GetErrorMessage(resp))
	}
	return r.client.DecodeService(resp)
}

type httpRequestSubmitter struct {
	client *client.RequestClient
}

func NewHTTPRequestSubmitter(c *client.RequestClient) RequestSubmitter {
	return &httpRequestSubmitter{client: c}
}

func (s *httpRequestSubmitter) SubmitRequest(ctx context.Context, input *model.BookingRequestInput) (*model.BookingRequest, error) {
	resp, err := s.client.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, flowerrors.ErrUnauthenticated
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("booking request rejected: %s", client.GetErrorMessage(resp))
	}
	return s.client.DecodeRequest(resp)
}
