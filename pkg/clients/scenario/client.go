// Package scenario is the HTTP client for the Scenario/Projection Service,
// which serves projected growth curves used as trigger-evaluation input.
package scenario

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

// Client exposes the projection operations used by the planning engine.
type Client interface {
	GetGrowthProjection(ctx context.Context, batchID string) ([]models.GrowthProjectionPoint, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

type apiError struct {
	Detail string `json:"detail"`
}

// NewClient builds a scenario-service client from configuration.
func NewClient(cfg config.ScenarioConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIToken)).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// GetGrowthProjection fetches the day/weight curve projected for a batch.
func (c *APIClient) GetGrowthProjection(ctx context.Context, batchID string) ([]models.GrowthProjectionPoint, error) {
	var result struct {
		Points []models.GrowthProjectionPoint `json:"points"`
	}
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(apiErr).
		Get(fmt.Sprintf("/api/v1/batches/%s/projection", batchID))
	if err != nil {
		return nil, fmt.Errorf("fetch growth projection: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("scenario service error: status=%d, detail=%s", resp.StatusCode(), apiErr.Detail)
	}

	return result.Points, nil
}
