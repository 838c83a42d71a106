// Package registry is the HTTP client for the four read operations of the
// public building-registry service, with response normalization and an
// optional redis read-through cache.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"disclosure-pipeline/internal/common/config"
	"disclosure-pipeline/internal/common/logger"
	"disclosure-pipeline/internal/common/metrics"
	"disclosure-pipeline/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	endpointTitle    = "getBrTitleInfo"
	endpointFloor    = "getBrFlrOulnInfo"
	endpointUnitArea = "getBrExposPubuseAreaInfo"
	endpointUnit     = "getBrExposInfo"
)

// Client is the read surface of the building registry. Implementations
// normalize the loose upstream payloads into the typed record shapes.
type Client interface {
	TitleInfo(ctx context.Context, code models.AddressCode, rows int) ([]models.BuildingRecord, error)
	FloorInfo(ctx context.Context, code models.AddressCode, registryKey string, rows int) ([]models.FloorRecord, error)
	UnitAreaInfo(ctx context.Context, code models.AddressCode, registryKey string, rows int) ([]models.UnitAreaRecord, error)
	UnitInfo(ctx context.Context, code models.AddressCode, registryKey string, rows int) ([]models.UnitRecord, error)
}

// HTTPClient talks to the public registry API.
type HTTPClient struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	cache    *redis.Client // nil disables caching
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewHTTPClient(cfg config.RegistryConfig, cache *redis.Client, log logger.Logger) *HTTPClient {
	if !cfg.CacheEnabled {
		cache = nil
	}
	return &HTTPClient{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: cfg.GetTimeout()},
		cache:    cache,
		cacheTTL: cfg.GetCacheTTL(),
		logger:   log.WithFields(map[string]interface{}{"component": "registry"}),
	}
}

func (c *HTTPClient) TitleInfo(ctx context.Context, code models.AddressCode, rows int) ([]models.BuildingRecord, error) {
	items, err := c.fetchItems(ctx, endpointTitle, code, "", rows)
	if err != nil {
		return nil, err
	}
	records := make([]models.BuildingRecord, 0, len(items))
	for _, item := range items {
		records = append(records, normalizeBuilding(item))
	}
	return records, nil
}

func (c *HTTPClient) FloorInfo(ctx context.Context, code models.AddressCode, registryKey string, rows int) ([]models.FloorRecord, error) {
	items, err := c.fetchItems(ctx, endpointFloor, code, registryKey, rows)
	if err != nil {
		return nil, err
	}
	records := make([]models.FloorRecord, 0, len(items))
	for _, item := range items {
		records = append(records, normalizeFloor(item))
	}
	return records, nil
}

func (c *HTTPClient) UnitAreaInfo(ctx context.Context, code models.AddressCode, registryKey string, rows int) ([]models.UnitAreaRecord, error) {
	items, err := c.fetchItems(ctx, endpointUnitArea, code, registryKey, rows)
	if err != nil {
		return nil, err
	}
	records := make([]models.UnitAreaRecord, 0, len(items))
	for _, item := range items {
		records = append(records, normalizeUnitArea(item))
	}
	return records, nil
}

func (c *HTTPClient) UnitInfo(ctx context.Context, code models.AddressCode, registryKey string, rows int) ([]models.UnitRecord, error) {
	items, err := c.fetchItems(ctx, endpointUnit, code, registryKey, rows)
	if err != nil {
		return nil, err
	}
	records := make([]models.UnitRecord, 0, len(items))
	for _, item := range items {
		records = append(records, normalizeUnit(item))
	}
	return records, nil
}

// apiEnvelope is the standard response wrapper of the public data portal.
type apiEnvelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items itemsField `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// itemsField absorbs the three shapes "items" arrives in: absent/empty
// string, a single object, or an array of objects.
type itemsField struct {
	Items []map[string]interface{}
}

func (f *itemsField) UnmarshalJSON(b []byte) error {
	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(b, &wrapper); err != nil {
		// "items": "" on empty result sets.
		return nil
	}
	if len(wrapper.Item) == 0 {
		return nil
	}
	var many []map[string]interface{}
	if err := json.Unmarshal(wrapper.Item, &many); err == nil {
		f.Items = many
		return nil
	}
	var one map[string]interface{}
	if err := json.Unmarshal(wrapper.Item, &one); err == nil {
		f.Items = []map[string]interface{}{one}
		return nil
	}
	return nil
}

func (c *HTTPClient) fetchItems(ctx context.Context, endpoint string, code models.AddressCode, registryKey string, rows int) ([]map[string]interface{}, error) {
	params := url.Values{}
	params.Set("serviceKey", c.apiKey)
	params.Set("_type", "json")
	params.Set("sigunguCd", code.SigunguCode)
	params.Set("bjdongCd", code.BjdongCode)
	params.Set("platGbCd", "0")
	params.Set("bun", code.Bun)
	params.Set("ji", code.Ji)
	params.Set("numOfRows", fmt.Sprintf("%d", rows))
	params.Set("pageNo", "1")
	if registryKey != "" {
		params.Set("mgmBldrgstPk", registryKey)
	}

	cacheKey := fmt.Sprintf("bldrgst:%s:%s:%s:%s:%s:%s:%d",
		endpoint, code.SigunguCode, code.BjdongCode, code.Bun, code.Ji, registryKey, rows)

	if c.cache != nil {
		if val, err := c.cache.Get(ctx, cacheKey).Result(); err == nil {
			var items []map[string]interface{}
			if err := json.Unmarshal([]byte(val), &items); err == nil {
				metrics.RegistryCacheHits.WithLabelValues(endpoint).Inc()
				return items, nil
			}
		}
	}

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build registry request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RegistryCalls.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("registry call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RegistryCalls.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("read registry response %s: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		metrics.RegistryCalls.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("registry call %s: status %d", endpoint, resp.StatusCode)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		metrics.RegistryCalls.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("decode registry response %s: %w", endpoint, err)
	}
	if rc := envelope.Response.Header.ResultCode; rc != "" && rc != "00" {
		metrics.RegistryCalls.WithLabelValues(endpoint, "upstream_error").Inc()
		return nil, fmt.Errorf("registry call %s: %s (%s)", endpoint, envelope.Response.Header.ResultMsg, rc)
	}
	metrics.RegistryCalls.WithLabelValues(endpoint, "ok").Inc()

	items := envelope.Response.Body.Items.Items
	c.logger.Debug("registry response", map[string]interface{}{
		"endpoint": endpoint,
		"items":    len(items),
	})

	if c.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			c.cache.Set(ctx, cacheKey, data, c.cacheTTL)
		}
	}
	return items, nil
}
