package models

import (
	"strconv"
	"strings"
	"time"
)

// RaffleMetaobjectType is the type tag under which raffle records live in the
// platform's metaobject store.
const RaffleMetaobjectType = "raffle_product"

// Canonical field keys for the raffle_product metaobject. Both the create and
// list paths must use these keys; earlier iterations of the admin app drifted
// between plain and "raffle_product."-prefixed keys.
const (
	FieldProductID         = "product_id"
	FieldProductHandle     = "product_handle"
	FieldProductTitle      = "product_title"
	FieldQuantityAvailable = "quantity_available"
	FieldDeadline          = "deadline"
	FieldIsActive          = "is_active"
)

// MetaobjectField is one key/value pair of a metaobject. The store represents
// a record as an ordered list of these rather than a flat object.
type MetaobjectField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Metaobject is a persisted record as returned by the store.
type Metaobject struct {
	ID     string            `json:"id"`
	Fields []MetaobjectField `json:"fields"`
}

// RaffleInput is the merchant-entered payload for creating a raffle.
type RaffleInput struct {
	ProductID         string `json:"product_id"`
	ProductHandle     string `json:"product_handle"`
	ProductTitle      string `json:"product_title"`
	QuantityAvailable int    `json:"quantity_available"`
	Deadline          string `json:"deadline"`
	IsActive          bool   `json:"is_active"`
}

// Validate checks the creation preconditions and returns a map of field name
// to message for every violation. An empty map means the input is valid.
func (in RaffleInput) Validate() map[string]string {
	fieldErrors := make(map[string]string)

	if strings.TrimSpace(in.ProductID) == "" {
		fieldErrors["productId"] = "A product must be selected for the raffle"
	}
	if strings.TrimSpace(in.ProductTitle) == "" {
		fieldErrors["productTitle"] = "Product title is required"
	}
	if in.QuantityAvailable <= 0 {
		fieldErrors["quantityAvailable"] = "Quantity must be a positive integer"
	}
	if strings.TrimSpace(in.Deadline) == "" {
		fieldErrors["deadline"] = "Deadline is required"
	} else if _, err := time.Parse(time.RFC3339, in.Deadline); err != nil {
		fieldErrors["deadline"] = "Deadline must be an ISO-8601 timestamp"
	}

	return fieldErrors
}

// Fields builds the ordered field list submitted to the metaobject create
// mutation. All values are strings on the wire.
func (in RaffleInput) Fields() []MetaobjectField {
	return []MetaobjectField{
		{Key: FieldProductID, Value: in.ProductID},
		{Key: FieldProductHandle, Value: in.ProductHandle},
		{Key: FieldProductTitle, Value: in.ProductTitle},
		{Key: FieldQuantityAvailable, Value: strconv.Itoa(in.QuantityAvailable)},
		{Key: FieldDeadline, Value: in.Deadline},
		{Key: FieldIsActive, Value: strconv.FormatBool(in.IsActive)},
	}
}

// RaffleRecord is a raffle as read back from the store. Deadline stays in its
// stored ISO form; locale-aware formatting is deferred to presentation.
type RaffleRecord struct {
	ID                string `json:"id"`
	ProductID         string `json:"product_id"`
	ProductHandle     string `json:"product_handle"`
	ProductTitle      string `json:"product_title"`
	QuantityAvailable int    `json:"quantity_available"`
	Deadline          string `json:"deadline"`
	IsActive          bool   `json:"is_active"`
}

// RaffleFromMetaobject maps a sparse field list back into a flat record.
// Quantity is coerced to an integer (missing or malformed values become 0).
// The active flag is the strict string comparison `value == "true"`; any other
// stored value, including "True" or "1", maps to false.
func RaffleFromMetaobject(obj Metaobject) RaffleRecord {
	record := RaffleRecord{ID: obj.ID}

	for _, field := range obj.Fields {
		switch field.Key {
		case FieldProductID:
			record.ProductID = field.Value
		case FieldProductHandle:
			record.ProductHandle = field.Value
		case FieldProductTitle:
			record.ProductTitle = field.Value
		case FieldQuantityAvailable:
			if quantity, err := strconv.Atoi(field.Value); err == nil {
				record.QuantityAvailable = quantity
			}
		case FieldDeadline:
			record.Deadline = field.Value
		case FieldIsActive:
			record.IsActive = field.Value == "true"
		}
	}

	return record
}

// ProductAdminID returns the numeric tail of the product GID, used to build
// the outbound link to the product's own admin page.
func (r RaffleRecord) ProductAdminID() string {
	parts := strings.Split(r.ProductID, "/")
	return parts[len(parts)-1]
}

// DeadlineTime parses the stored deadline. Callers needing a formatted
// deadline should format the returned instant at render time.
func (r RaffleRecord) DeadlineTime() (time.Time, error) {
	return time.Parse(time.RFC3339, r.Deadline)
}

// StatusLabel renders the active flag for display.
func (r RaffleRecord) StatusLabel() string {
	if r.IsActive {
		return "Active"
	}
	return "Inactive"
}

// ComposeDeadline combines a calendar date (YYYY-MM-DD) and a time of day
// (HH:MM) into the ISO-8601 instant stored with the raffle.
func ComposeDeadline(date, timeOfDay string) (string, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", err
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return "", err
	}
	return date + "T" + timeOfDay + ":00Z", nil
}
