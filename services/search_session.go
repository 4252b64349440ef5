package services

import (
	"context"
	"sync"

	"github.com/fenilmodi00/raffle-admin/models"
	"github.com/sirupsen/logrus"
)

// SearchSession serializes type-ahead searches from one admin surface so that
// only the response to the most recently issued search is applied. Each
// dispatched search gets a monotonically increasing sequence number; a
// response is discarded when a newer search was issued meanwhile, regardless
// of arrival order.
type SearchSession struct {
	service *RaffleService

	mutex     sync.Mutex
	latestSeq uint64
	term      string
	results   []models.Product
}

// NewSearchSession creates a search session backed by the workflow service.
func NewSearchSession(service *RaffleService) *SearchSession {
	return &SearchSession{service: service}
}

// Search issues a catalog search under a fresh sequence number. The returned
// applied flag is false when the response lost the race to a newer search and
// was discarded; callers must not render a discarded result.
func (s *SearchSession) Search(ctx context.Context, term string) (results []models.Product, applied bool, err error) {
	s.mutex.Lock()
	s.latestSeq++
	seq := s.latestSeq
	s.mutex.Unlock()

	products, err := s.service.SearchProducts(ctx, term)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if seq != s.latestSeq {
		logrus.WithFields(logrus.Fields{
			"component":  "SearchSession",
			"stale_seq":  seq,
			"latest_seq": s.latestSeq,
			"term":       term,
		}).Debug("Discarding stale search response")
		return nil, false, nil
	}

	if err != nil {
		return nil, true, err
	}

	s.term = term
	s.results = products
	return products, true, nil
}

// Current returns the last applied term and results.
func (s *SearchSession) Current() (string, []models.Product) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.term, s.results
}

// Reset clears the session state, e.g. when the search box is cleared.
func (s *SearchSession) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.term = ""
	s.results = nil
}
