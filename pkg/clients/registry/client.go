// Package registry is the HTTP client for the Batch Registry, the read-only
// source of batch identity, lifecycle stage, weight and population.
package registry

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/aquarian247/aquamind-planning/internal/config"
	"github.com/aquarian247/aquamind-planning/internal/domain/models"
)

// Client exposes the Batch Registry operations used by the planning engine.
type Client interface {
	GetLifecycleSnapshot(ctx context.Context, batchID string) (models.BatchLifecycleSnapshot, error)
	ListRecentBatches(ctx context.Context, since time.Time) ([]models.BatchLifecycleSnapshot, error)
	GetFacilityMetrics(ctx context.Context, facilityID string) (models.FacilityMetrics, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// apiError mirrors the registry's error payload.
type apiError struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// NewClient builds a registry client from configuration.
func NewClient(cfg config.RegistryConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIToken)).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// GetLifecycleSnapshot fetches the batch's current lifecycle state.
func (c *APIClient) GetLifecycleSnapshot(ctx context.Context, batchID string) (models.BatchLifecycleSnapshot, error) {
	result := new(models.BatchLifecycleSnapshot)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr).
		Get(fmt.Sprintf("/api/v1/batches/%s/lifecycle", batchID))
	if err != nil {
		return models.BatchLifecycleSnapshot{}, fmt.Errorf("fetch lifecycle snapshot: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return models.BatchLifecycleSnapshot{}, fmt.Errorf("registry error: status=%d, detail=%s", resp.StatusCode(), apiErr.Detail)
	}

	return *result, nil
}

// ListRecentBatches returns batches started at or after the given time.
func (c *APIClient) ListRecentBatches(ctx context.Context, since time.Time) ([]models.BatchLifecycleSnapshot, error) {
	var result struct {
		Batches []models.BatchLifecycleSnapshot `json:"batches"`
	}
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("started_after", since.UTC().Format(time.RFC3339)).
		SetResult(&result).
		SetError(apiErr).
		Get("/api/v1/batches")
	if err != nil {
		return nil, fmt.Errorf("list recent batches: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("registry error: status=%d, detail=%s", resp.StatusCode(), apiErr.Detail)
	}

	return result.Batches, nil
}

// GetFacilityMetrics fetches one facility's biological metric snapshot.
func (c *APIClient) GetFacilityMetrics(ctx context.Context, facilityID string) (models.FacilityMetrics, error) {
	result := new(models.FacilityMetrics)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr).
		Get(fmt.Sprintf("/api/v1/facilities/%s/metrics", facilityID))
	if err != nil {
		return models.FacilityMetrics{}, fmt.Errorf("fetch facility metrics: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return models.FacilityMetrics{}, fmt.Errorf("registry error: status=%d, detail=%s", resp.StatusCode(), apiErr.Detail)
	}

	result.FacilityID = facilityID
	return *result, nil
}
