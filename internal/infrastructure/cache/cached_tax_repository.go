package cache

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orc/backend/internal/domain/shared"
	"github.com/orc/backend/internal/domain/tariff"
)

// CachedTaxRepository decorates a TaxRepository with a RateCache on the
// FindApplicable hot path. Checkins resolve a rate on every station visit,
// so reads go through the cache while writes invalidate it.
//
// Only FindApplicable is cached. List and count queries go straight to the
// database, and transactional code paths must use the undecorated repository
// so reads see uncommitted writes.
type CachedTaxRepository struct {
	repo   tariff.TaxRepository
	cache  tariff.RateCache
	logger *zap.Logger
}

// NewCachedTaxRepository creates a caching decorator around repo
func NewCachedTaxRepository(repo tariff.TaxRepository, cache tariff.RateCache, logger *zap.Logger) *CachedTaxRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedTaxRepository{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// FindByID finds a tax by its ID
func (r *CachedTaxRepository) FindByID(ctx context.Context, id uuid.UUID) (*tariff.Tax, error) {
	return r.repo.FindByID(ctx, id)
}

// FindApplicable resolves the rate for the triple, reading through the cache.
// Cache errors degrade to a database read rather than failing the lookup.
func (r *CachedTaxRepository) FindApplicable(ctx context.Context, stationID, taxPayerTypeID, commodityID uuid.UUID) (*tariff.Tax, error) {
	key := tariff.RateKey{StationID: stationID, TaxPayerTypeID: taxPayerTypeID, CommodityID: commodityID}

	cached, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("Rate cache read failed, falling back to database",
			zap.String("key", key.String()),
			zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	tax, err := r.repo.FindApplicable(ctx, stationID, taxPayerTypeID, commodityID)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, tax, 0); err != nil {
		r.logger.Warn("Failed to cache tax rate",
			zap.String("key", key.String()),
			zap.Error(err))
	}

	return tax, nil
}

// FindByStation finds all rates configured for a station
func (r *CachedTaxRepository) FindByStation(ctx context.Context, stationID uuid.UUID, filter shared.Filter) ([]tariff.Tax, error) {
	return r.repo.FindByStation(ctx, stationID, filter)
}

// FindAll finds all taxes matching the filter
func (r *CachedTaxRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tariff.Tax, error) {
	return r.repo.FindAll(ctx, filter)
}

// Save creates or updates a tax and invalidates the station's cached rates.
// An update may move the rate to a different triple, so the whole station
// is cleared rather than a single key.
func (r *CachedTaxRepository) Save(ctx context.Context, tax *tariff.Tax) error {
	if err := r.repo.Save(ctx, tax); err != nil {
		return err
	}

	if err := r.cache.InvalidateStation(ctx, tax.StationID); err != nil {
		r.logger.Warn("Failed to invalidate station rates after save",
			zap.String("station_id", tax.StationID.String()),
			zap.Error(err))
	}

	return nil
}

// Delete deletes a tax and invalidates its cached rate
func (r *CachedTaxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tax, err := r.repo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	if tax != nil {
		key := tariff.RateKey{StationID: tax.StationID, TaxPayerTypeID: tax.TaxPayerTypeID, CommodityID: tax.CommodityID}
		if err := r.cache.Delete(ctx, key); err != nil {
			r.logger.Warn("Failed to invalidate rate after delete",
				zap.String("key", key.String()),
				zap.Error(err))
		}
	}

	return nil
}

// Count counts taxes matching the filter
func (r *CachedTaxRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.repo.Count(ctx, filter)
}

// Ensure CachedTaxRepository implements TaxRepository
var _ tariff.TaxRepository = (*CachedTaxRepository)(nil)
