package services

import (
	"context"
	"unicode/utf8"

	"github.com/fenilmodi00/raffle-admin/models"
	"github.com/fenilmodi00/raffle-admin/shared"
	"github.com/sirupsen/logrus"
)

// MinSearchLength is the minimum number of characters before a catalog search
// is issued. Shorter terms return an empty result without a remote call.
const MinSearchLength = 3

const raffleListCacheKey = "raffle_list"

// RaffleService implements the raffle intake workflow: product search, raffle
// creation and list retrieval, all against the injected platform port.
type RaffleService struct {
	Platform AdminPlatform
	Cache    *CacheService
	Audit    *AuditService
}

// NewRaffleService creates the workflow service. Cache and audit are optional;
// a nil audit service disables the local attempt log.
func NewRaffleService(platform AdminPlatform, cache *CacheService, audit *AuditService) *RaffleService {
	return &RaffleService{
		Platform: platform,
		Cache:    cache,
		Audit:    audit,
	}
}

// SearchProducts returns up to MaxSearchResults catalog matches for term.
// Terms below the minimum length return an empty slice and never reach the
// platform.
func (s *RaffleService) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	if utf8.RuneCountInString(term) < MinSearchLength {
		return []models.Product{}, nil
	}
	return s.Platform.SearchProducts(ctx, term)
}

// CreateRaffle validates the input and persists it as a raffle_product
// metaobject. Validation failures are reported without any remote write.
// There is no retry and no idempotency key: resubmitting after a transient
// failure creates a second record.
func (s *RaffleService) CreateRaffle(ctx context.Context, input models.RaffleInput) (string, error) {
	if fieldErrors := input.Validate(); len(fieldErrors) > 0 {
		err := shared.NewValidationError(fieldErrors)
		s.Audit.RecordCreateAttempt(ctx, input, "", err)
		return "", err
	}

	raffleID, err := s.Platform.CreateMetaobject(ctx, models.RaffleMetaobjectType, input.Fields())
	s.Audit.RecordCreateAttempt(ctx, input, raffleID, err)
	if err != nil {
		return "", err
	}

	// The cached list is stale as soon as a create lands.
	if s.Cache != nil {
		s.Cache.Delete(raffleListCacheKey)
	}

	logrus.WithFields(logrus.Fields{
		"raffle_id":  raffleID,
		"product_id": input.ProductID,
		"quantity":   input.QuantityAvailable,
		"deadline":   input.Deadline,
	}).Info("Created raffle")

	return raffleID, nil
}

// ListRaffles returns persisted raffles in store order, served from cache
// while fresh.
func (s *RaffleService) ListRaffles(ctx context.Context) ([]models.RaffleRecord, error) {
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(raffleListCacheKey); ok {
			if records, ok := cached.([]models.RaffleRecord); ok {
				return records, nil
			}
		}
	}
	return s.RefreshRaffleList(ctx)
}

// RefreshRaffleList bypasses the cache, fetches the list from the store and
// re-primes the cache. Used by the periodic refresh job and the manual admin
// refresh endpoint.
func (s *RaffleService) RefreshRaffleList(ctx context.Context) ([]models.RaffleRecord, error) {
	objects, err := s.Platform.ListMetaobjects(ctx, models.RaffleMetaobjectType, MaxListedRaffles)
	if err != nil {
		return nil, err
	}

	records := make([]models.RaffleRecord, 0, len(objects))
	for _, obj := range objects {
		records = append(records, models.RaffleFromMetaobject(obj))
	}

	if s.Cache != nil {
		s.Cache.Set(raffleListCacheKey, records)
	}

	return records, nil
}
