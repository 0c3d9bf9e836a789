package nearby

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/db"
	"github.com/kailas-cloud/nearby/internal/db/memory"
	dbRedis "github.com/kailas-cloud/nearby/internal/db/redis"
	"github.com/kailas-cloud/nearby/internal/domain/poi"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
	"github.com/kailas-cloud/nearby/internal/domain/search/request"
	poirepo "github.com/kailas-cloud/nearby/internal/repository/poi"
	postalcoderepo "github.com/kailas-cloud/nearby/internal/repository/postalcode"
	datasetuc "github.com/kailas-cloud/nearby/internal/usecase/dataset"
	healthuc "github.com/kailas-cloud/nearby/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/nearby/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/nearby/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "nearby:"
)

// Client is the nearby SDK entry point. Safe for concurrent use.
type Client struct {
	store     db.Store
	search    *searchuc.Service
	zips      *ingestuc.Pipeline[postalcode.PostalCode]
	locations *ingestuc.Pipeline[poi.PointOfInterest]
	dataset   *datasetuc.Validator
	health    healthChecker
	obs       *observer
}

// New creates a Client and connects to the store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("nearby: store required (use WithRedis, WithValkey or WithMemory)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("nearby: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "redis", "valkey":
		if len(cfg.addrs) == 0 {
			return nil, fmt.Errorf("nearby: address required for %s", cfg.driver)
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("nearby: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("nearby: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	zipRepo := postalcoderepo.New(store, cfg.keyPrefix)
	locRepo := poirepo.New(store, cfg.keyPrefix)

	searchSvc := searchuc.New(zipRepo, locRepo)
	if cfg.defaultLimit > 0 || cfg.maxLimit > 0 {
		searchSvc = searchSvc.WithLimits(request.Limits{Default: cfg.defaultLimit, Max: cfg.maxLimit})
	}

	// pipelines log through the observer, not zap
	zips := ingestuc.NewPipeline[postalcode.PostalCode]("zipcodes", zipRepo, zap.NewNop())
	locations := ingestuc.NewPipeline[poi.PointOfInterest]("locations", locRepo, zap.NewNop())
	if cfg.maxBatchSize > 0 {
		zips = zips.WithMaxBatchSize(cfg.maxBatchSize)
		locations = locations.WithMaxBatchSize(cfg.maxBatchSize)
	}

	return &Client{
		store:     store,
		search:    searchSvc,
		zips:      zips,
		locations: locations,
		dataset:   datasetuc.New(zipRepo, locRepo),
		health:    healthuc.New(store, zipRepo),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search returns the active locations closest to postalCode. A limit of 0 uses
// the configured default. Errors match ErrValidation, ErrNotFound or ErrStore.
func (c *Client) Search(ctx context.Context, postalCode string, limit int) (resp SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	var lim *int
	if limit != 0 {
		lim = &limit
	}
	res, err := c.search.Search(ctx, postalCode, lim)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}

	resp = SearchResponse{
		Origin:  fromDomainPostalCode(res.Origin),
		Results: make([]SearchHit, len(res.Results)),
		Message: res.Message,
	}
	for i := range res.Results {
		resp.Results[i] = fromDomainResult(&res.Results[i])
	}
	return resp, nil
}

// PostalCode returns a stored postal code. ZIP+4 input resolves by its ZIP.
func (c *Client) PostalCode(ctx context.Context, code string) (pc PostalCode, err error) {
	start := time.Now()
	defer func() { c.obs.observe("postal_code", start, err) }()

	found, err := c.search.PostalCode(ctx, code)
	if err != nil {
		return PostalCode{}, fmt.Errorf("get postal code: %w", err)
	}
	return fromDomainPostalCode(found), nil
}

// ImportPostalCodes inserts codes not stored yet. batchSize 0 uses the default.
// Failures are reported per chunk in the result, never returned.
func (c *Client) ImportPostalCodes(ctx context.Context, codes []PostalCode, batchSize int) ImportResult {
	start := time.Now()
	records := make([]postalcode.PostalCode, len(codes))
	for i, pc := range codes {
		records[i] = toDomainPostalCode(pc)
	}
	res := fromDomainOutcome(c.zips.Ingest(ctx, records, batchSize))
	c.obs.observeImport("import_postal_codes", "zipcodes", start, res)
	return res
}

// ImportLocations inserts locations whose (name, address) is not stored yet.
func (c *Client) ImportLocations(ctx context.Context, locations []Location, batchSize int) ImportResult {
	start := time.Now()
	records := make([]poi.PointOfInterest, len(locations))
	for i, l := range locations {
		records[i] = toDomainLocation(l)
	}
	res := fromDomainOutcome(c.locations.Ingest(ctx, records, batchSize))
	c.obs.observeImport("import_locations", "locations", start, res)
	return res
}

// ValidatePostalCodes checks codes before import. It does not touch the store.
func (c *Client) ValidatePostalCodes(codes []PostalCode) Report {
	records := make([]postalcode.PostalCode, len(codes))
	for i, pc := range codes {
		records[i] = toDomainPostalCode(pc)
	}
	return fromDomainReport(datasetuc.ValidatePostalCodes(records))
}

// ValidateLocations checks locations before import. It does not touch the store.
func (c *Client) ValidateLocations(locations []Location) Report {
	records := make([]poi.PointOfInterest, len(locations))
	for i, l := range locations {
		records[i] = toDomainLocation(l)
	}
	return fromDomainReport(datasetuc.ValidateLocations(records))
}

// ValidateStored reports orphan locations, unused postal codes and stored duplicates.
func (c *Client) ValidateStored(ctx context.Context) (rep Report, err error) {
	start := time.Now()
	defer func() { c.obs.observe("validate_stored", start, err) }()

	r, err := c.dataset.ValidateStored(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("validate stored: %w", err)
	}
	return fromDomainReport(r), nil
}

// Stats returns stored record counts.
func (c *Client) Stats(ctx context.Context) (st Stats, err error) {
	start := time.Now()
	defer func() { c.obs.observe("stats", start, err) }()

	s, err := c.dataset.Stats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return fromDomainStats(s), nil
}

// ClearPostalCodes deletes every stored postal code.
func (c *Client) ClearPostalCodes(ctx context.Context) (int, error) {
	return c.clear(ctx, "clear_postal_codes", c.zips)
}

// ClearLocations deletes every stored location.
func (c *Client) ClearLocations(ctx context.Context) (int, error) {
	return c.clear(ctx, "clear_locations", c.locations)
}

// ClearAll deletes locations, then postal codes.
func (c *Client) ClearAll(ctx context.Context) (int, error) {
	return c.clear(ctx, "clear_all", c.locations, c.zips)
}

func (c *Client) clear(ctx context.Context, op string, clearers ...ingestuc.Clearer) (n int, err error) {
	start := time.Now()
	defer func() { c.obs.observe(op, start, err) }()

	n, err = ingestuc.ClearAll(ctx, clearers...)
	if err != nil {
		return n, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

var errChunksFailed = errors.New("chunks failed")

// outcomeErr marks an import with failed records as an error for metrics.
func outcomeErr(failed int) error {
	if failed > 0 {
		return fmt.Errorf("%d records: %w", failed, errChunksFailed)
	}
	return nil
}
