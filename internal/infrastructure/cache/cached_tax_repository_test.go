package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orc/backend/internal/domain/shared"
	"github.com/orc/backend/internal/domain/tariff"
)

// stubTaxRepository counts calls so cache hits can be asserted
type stubTaxRepository struct {
	tariff.TaxRepository
	taxes           map[string]*tariff.Tax
	applicableCalls int
}

func newStubTaxRepository() *stubTaxRepository {
	return &stubTaxRepository{taxes: make(map[string]*tariff.Tax)}
}

func (s *stubTaxRepository) put(tax *tariff.Tax) {
	key := tariff.RateKey{StationID: tax.StationID, TaxPayerTypeID: tax.TaxPayerTypeID, CommodityID: tax.CommodityID}
	s.taxes[key.String()] = tax
}

func (s *stubTaxRepository) FindApplicable(ctx context.Context, stationID, taxPayerTypeID, commodityID uuid.UUID) (*tariff.Tax, error) {
	s.applicableCalls++
	key := tariff.RateKey{StationID: stationID, TaxPayerTypeID: taxPayerTypeID, CommodityID: commodityID}
	tax, ok := s.taxes[key.String()]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return tax, nil
}

func (s *stubTaxRepository) FindByID(ctx context.Context, id uuid.UUID) (*tariff.Tax, error) {
	for _, tax := range s.taxes {
		if tax.ID == id {
			return tax, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *stubTaxRepository) Save(ctx context.Context, tax *tariff.Tax) error {
	s.put(tax)
	return nil
}

func (s *stubTaxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for k, tax := range s.taxes {
		if tax.ID == id {
			delete(s.taxes, k)
			return nil
		}
	}
	return shared.ErrNotFound
}

func TestCachedTaxRepository_FindApplicable_CachesResult(t *testing.T) {
	repo := newStubTaxRepository()
	rateCache := NewInMemoryTaxRateCache()
	defer rateCache.Close()

	key := newTestRateKey()
	repo.put(newTestRate(t, key))

	cached := NewCachedTaxRepository(repo, rateCache, nil)
	ctx := context.Background()

	// First lookup hits the database
	tax, err := cached.FindApplicable(ctx, key.StationID, key.TaxPayerTypeID, key.CommodityID)
	require.NoError(t, err)
	require.NotNil(t, tax)
	assert.Equal(t, 1, repo.applicableCalls)

	// Second lookup is served from cache
	tax, err = cached.FindApplicable(ctx, key.StationID, key.TaxPayerTypeID, key.CommodityID)
	require.NoError(t, err)
	require.NotNil(t, tax)
	assert.Equal(t, 1, repo.applicableCalls)
}

func TestCachedTaxRepository_FindApplicable_NotFoundNotCached(t *testing.T) {
	repo := newStubTaxRepository()
	rateCache := NewInMemoryTaxRateCache()
	defer rateCache.Close()

	cached := NewCachedTaxRepository(repo, rateCache, nil)
	ctx := context.Background()
	key := newTestRateKey()

	_, err := cached.FindApplicable(ctx, key.StationID, key.TaxPayerTypeID, key.CommodityID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// A rate configured afterwards must be found immediately
	repo.put(newTestRate(t, key))

	tax, err := cached.FindApplicable(ctx, key.StationID, key.TaxPayerTypeID, key.CommodityID)
	require.NoError(t, err)
	assert.NotNil(t, tax)
}

func TestCachedTaxRepository_Save_InvalidatesStation(t *testing.T) {
	repo := newStubTaxRepository()
	rateCache := NewInMemoryTaxRateCache()
	defer rateCache.Close()

	key := newTestRateKey()
	repo.put(newTestRate(t, key))

	cached := NewCachedTaxRepository(repo, rateCache, nil)
	ctx := context.Background()

	// Warm the cache
	_, err := cached.FindApplicable(ctx, key.StationID, key.TaxPayerTypeID, key.CommodityID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.applicableCalls)

	// Saving a rate for the station clears its cached entries
	updated := newTestRate(t, key)
	require.NoError(t, cached.Save(ctx, updated))

	_, err = cached.FindApplicable(ctx, key.StationID, key.TaxPayerTypeID, key.CommodityID)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.applicableCalls, "save should force the next lookup back to the database")
}

func TestCachedTaxRepository_Delete_InvalidatesRate(t *testing.T) {
	repo := newStubTaxRepository()
	rateCache := NewInMemoryTaxRateCache()
	defer rateCache.Close()

	key := newTestRateKey()
	rate := newTestRate(t, key)
	repo.put(rate)

	cached := NewCachedTaxRepository(repo, rateCache, nil)
	ctx := context.Background()

	// Warm the cache
	_, err := cached.FindApplicable(ctx, key.StationID, key.TaxPayerTypeID, key.CommodityID)
	require.NoError(t, err)

	require.NoError(t, cached.Delete(ctx, rate.ID))

	_, err = cached.FindApplicable(ctx, key.StationID, key.TaxPayerTypeID, key.CommodityID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
