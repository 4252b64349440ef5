package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fenilmodi00/raffle-admin/config"
	"github.com/fenilmodi00/raffle-admin/models"
	"github.com/fenilmodi00/raffle-admin/shared"
	"github.com/sirupsen/logrus"
)

// ShopifyAdminClient implements AdminPlatform over the hosted Admin GraphQL
// endpoint. Every call goes through the pooled HTTP client, the politeness
// rate limiter and an explicit per-request timeout; timeout expiry is a fatal
// failure, never retried here.
type ShopifyAdminClient struct {
	endpoint    string
	accessToken string
	timeout     time.Duration
	httpClient  *http.Client
	rateLimiter *shared.AdminAPIRateLimiter
	Metrics     *shared.ServiceMetrics
}

// NewShopifyAdminClient creates an Admin API client from configuration.
func NewShopifyAdminClient(cfg *config.Config, factory *shared.HTTPClientFactory) *ShopifyAdminClient {
	timeout := cfg.GetAdminTimeout()

	return &ShopifyAdminClient{
		endpoint:    fmt.Sprintf("https://%s/admin/api/%s/graphql.json", cfg.ShopDomain, cfg.AdminAPIVersion),
		accessToken: cfg.AdminAPIToken,
		timeout:     timeout,
		httpClient:  factory.Client(timeout),
		rateLimiter: shared.NewAdminAPIRateLimiter(cfg.GetAdminMinDelay()),
		Metrics:     shared.NewServiceMetrics("shopify_admin_client"),
	}
}

const productSearchQuery = `query searchProducts($query: String!, $first: Int!) {
  products(first: $first, query: $query) {
    edges {
      node {
        id
        title
        handle
        status
        featuredImage { url }
        variants(first: 1) {
          edges { node { price { amount currencyCode } } }
        }
      }
    }
  }
}`

const metaobjectCreateMutation = `mutation createRaffleProduct($metaobject: MetaobjectInput!) {
  metaobjectCreate(metaobject: $metaobject) {
    metaobject { id }
    userErrors { field message }
  }
}`

const metaobjectListQuery = `query listMetaobjects($type: String!, $first: Int!) {
  metaobjects(type: $type, first: $first) {
    edges {
      node {
        id
        fields { key value }
      }
    }
  }
}`

// BuildProductSearchFilter constructs the catalog filter: the logical OR of
// three starts-with predicates over title, tag and product type, using exactly
// the provided string.
func BuildProductSearchFilter(term string) string {
	return fmt.Sprintf("title:%s* OR tag:%s* OR product_type:%s*", term, term, term)
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// execute posts one GraphQL document and decodes data into out. Transport
// failures, non-200 responses and top-level GraphQL errors all surface as
// fatal workflow errors.
func (c *ShopifyAdminClient) execute(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	c.rateLimiter.Wait()

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return shared.NewFatalError("failed to encode Admin API request", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return shared.NewFatalError("failed to build Admin API request", err)
	}
	shared.SetAdminAPIHeaders(request, c.accessToken)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return shared.NewFatalError("Admin API request failed", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(response.Body, 2048))
		logrus.WithFields(logrus.Fields{
			"component":   "ShopifyAdminClient",
			"status_code": response.StatusCode,
			"body":        string(payload),
		}).Error("Admin API returned non-200 status")
		return shared.NewFatalError(
			fmt.Sprintf("Admin API returned HTTP %d", response.StatusCode), nil)
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return shared.NewFatalError("failed to decode Admin API response", err)
	}

	if len(envelope.Errors) > 0 {
		return shared.NewFatalError(
			fmt.Sprintf("Admin API query error: %s", envelope.Errors[0].Message), nil)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return shared.NewFatalError("failed to decode Admin API data", err)
	}

	return nil
}

// SearchProducts queries the remote catalog with the prefix filter built from
// term and maps each match to a flat Product.
func (c *ShopifyAdminClient) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	startTime := time.Now()

	var data struct {
		Products struct {
			Edges []struct {
				Node struct {
					ID            string `json:"id"`
					Title         string `json:"title"`
					Handle        string `json:"handle"`
					Status        string `json:"status"`
					FeaturedImage *struct {
						URL string `json:"url"`
					} `json:"featuredImage"`
					Variants struct {
						Edges []struct {
							Node struct {
								Price *struct {
									Amount       string `json:"amount"`
									CurrencyCode string `json:"currencyCode"`
								} `json:"price"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"variants"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}

	err := c.execute(ctx, productSearchQuery, map[string]interface{}{
		"query": BuildProductSearchFilter(term),
		"first": MaxSearchResults,
	}, &data)
	c.Metrics.RecordRequest(err == nil, time.Since(startTime))
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(data.Products.Edges))
	for _, edge := range data.Products.Edges {
		product := models.Product{
			ID:     edge.Node.ID,
			Title:  edge.Node.Title,
			Handle: edge.Node.Handle,
			Status: edge.Node.Status,
		}
		if edge.Node.FeaturedImage != nil {
			product.ImageURL = edge.Node.FeaturedImage.URL
		}
		if len(edge.Node.Variants.Edges) > 0 && edge.Node.Variants.Edges[0].Node.Price != nil {
			price := edge.Node.Variants.Edges[0].Node.Price
			product.Price = &models.ProductPrice{
				Amount:       price.Amount,
				CurrencyCode: price.CurrencyCode,
			}
		}
		products = append(products, product)
	}

	return products, nil
}

// CreateMetaobject submits the create mutation. Remote field validation
// errors come back as a remote_rejection keyed by field name so the form can
// attach inline messages.
func (c *ShopifyAdminClient) CreateMetaobject(ctx context.Context, objectType string, fields []models.MetaobjectField) (string, error) {
	startTime := time.Now()

	var data struct {
		MetaobjectCreate struct {
			Metaobject *struct {
				ID string `json:"id"`
			} `json:"metaobject"`
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"metaobjectCreate"`
	}

	err := c.execute(ctx, metaobjectCreateMutation, map[string]interface{}{
		"metaobject": map[string]interface{}{
			"type":   objectType,
			"fields": fields,
		},
	}, &data)
	c.Metrics.RecordRequest(err == nil, time.Since(startTime))
	if err != nil {
		return "", err
	}

	if len(data.MetaobjectCreate.UserErrors) > 0 {
		rejected := make(map[string]string, len(data.MetaobjectCreate.UserErrors))
		for _, userErr := range data.MetaobjectCreate.UserErrors {
			rejected[rejectedFieldName(userErr.Field)] = userErr.Message
		}
		return "", shared.NewRemoteRejection(rejected)
	}

	if data.MetaobjectCreate.Metaobject == nil {
		return "", shared.NewFatalError("Admin API returned no metaobject and no errors", nil)
	}

	return data.MetaobjectCreate.Metaobject.ID, nil
}

// rejectedFieldName extracts the field name from a userError path. The store
// reports paths like ["fields", "quantity_available"]; the second element is
// the field key when present.
func rejectedFieldName(path []string) string {
	switch {
	case len(path) > 1:
		return path[1]
	case len(path) == 1:
		return path[0]
	default:
		return "general"
	}
}

// ListMetaobjects fetches up to first records of the given type in store
// order.
func (c *ShopifyAdminClient) ListMetaobjects(ctx context.Context, objectType string, first int) ([]models.Metaobject, error) {
	startTime := time.Now()

	var data struct {
		Metaobjects struct {
			Edges []struct {
				Node models.Metaobject `json:"node"`
			} `json:"edges"`
		} `json:"metaobjects"`
	}

	err := c.execute(ctx, metaobjectListQuery, map[string]interface{}{
		"type":  objectType,
		"first": first,
	}, &data)
	c.Metrics.RecordRequest(err == nil, time.Since(startTime))
	if err != nil {
		return nil, err
	}

	objects := make([]models.Metaobject, 0, len(data.Metaobjects.Edges))
	for _, edge := range data.Metaobjects.Edges {
		objects = append(objects, edge.Node)
	}

	return objects, nil
}
