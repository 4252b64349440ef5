package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/fenilmodi00/raffle-admin/models"
)

// fakePlatform is an in-memory AdminPlatform used to test the workflow
// without a live Admin API.
type fakePlatform struct {
	mu            sync.Mutex
	searchCalls   int
	searchTerms   []string
	searchResults []models.Product
	searchErr     error
	searchHook    func(term string)

	createCalls int
	createErr   error
	created     []models.Metaobject
	nextID      int

	listErr error
}

func (f *fakePlatform) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	f.mu.Lock()
	f.searchCalls++
	f.searchTerms = append(f.searchTerms, term)
	hook := f.searchHook
	results := f.searchResults
	err := f.searchErr
	f.mu.Unlock()

	if hook != nil {
		hook(term)
	}
	return results, err
}

func (f *fakePlatform) CreateMetaobject(ctx context.Context, objectType string, fields []models.MetaobjectField) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.createErr != nil {
		return "", f.createErr
	}

	f.nextID++
	id := fmt.Sprintf("gid://shopify/Metaobject/%d", f.nextID)
	f.created = append(f.created, models.Metaobject{ID: id, Fields: fields})
	return id, nil
}

func (f *fakePlatform) ListMetaobjects(ctx context.Context, objectType string, first int) ([]models.Metaobject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	if len(f.created) > first {
		return append([]models.Metaobject(nil), f.created[:first]...), nil
	}
	return append([]models.Metaobject(nil), f.created...), nil
}

func (f *fakePlatform) storedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}
