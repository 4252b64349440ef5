package services

import (
	"context"

	"github.com/fenilmodi00/raffle-admin/models"
)

// AdminPlatform is the injected capability for everything the workflow needs
// from the commerce platform. Exactly three operations; the raffle workflow is
// tested against a fake implementation of this interface.
type AdminPlatform interface {
	// SearchProducts queries the remote catalog with a prefix filter and
	// returns at most MaxSearchResults matches.
	SearchProducts(ctx context.Context, term string) ([]models.Product, error)

	// CreateMetaobject persists a record of the given type as a field list
	// and returns the id assigned by the store. Field-level rejections come
	// back as a shared.WorkflowError of kind remote_rejection.
	CreateMetaobject(ctx context.Context, objectType string, fields []models.MetaobjectField) (string, error)

	// ListMetaobjects returns up to first records of the given type in
	// store order.
	ListMetaobjects(ctx context.Context, objectType string, first int) ([]models.Metaobject, error)
}

const (
	// MaxSearchResults is the catalog page size; no pagination beyond the
	// first page.
	MaxSearchResults = 10

	// MaxListedRaffles is the metaobject page size for the list view.
	MaxListedRaffles = 100
)
