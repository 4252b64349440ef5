package services

import (
	"time"
	"unicode/utf8"

	"github.com/fenilmodi00/raffle-admin/models"
)

// RaffleFormState is the explicit view-model of the create-raffle form. All
// mutable form state lives here instead of in the rendering layer; user
// actions are folded in through ApplyCommand, which returns the next state
// and at most one outgoing effect.
type RaffleFormState struct {
	SearchTerm    string
	SearchSeq     uint64
	SearchResults []models.Product
	Selected      *models.Product
	Quantity      int
	DeadlineDate  string
	DeadlineTime  string
	IsActive      bool
	FieldErrors   map[string]string
}

// NewRaffleFormState returns the initial form state: quantity 1, deadline
// defaulting to end of the current day, raffle active.
func NewRaffleFormState() RaffleFormState {
	return RaffleFormState{
		Quantity:     1,
		DeadlineDate: time.Now().UTC().Format("2006-01-02"),
		DeadlineTime: "23:59",
		IsActive:     true,
		FieldErrors:  map[string]string{},
	}
}

// Command is one user action on the create-raffle form.
type Command interface{ isCommand() }

type SearchChanged struct{ Term string }
type ProductSelected struct{ Product models.Product }
type QuantityChanged struct{ Quantity int }
type DeadlineChanged struct{ Date, Time string }
type ActiveToggled struct{ IsActive bool }
type Submit struct{}

func (SearchChanged) isCommand()   {}
func (ProductSelected) isCommand() {}
func (QuantityChanged) isCommand() {}
func (DeadlineChanged) isCommand() {}
func (ActiveToggled) isCommand()   {}
func (Submit) isCommand()          {}

// Effect is the at-most-one outgoing request produced by a command.
type Effect interface{ isEffect() }

// SearchEffect requests a catalog search. Seq is the sequence number the
// response must still match to be applied.
type SearchEffect struct {
	Term string
	Seq  uint64
}

// CreateEffect requests a raffle creation with the assembled input.
type CreateEffect struct {
	Input models.RaffleInput
}

func (SearchEffect) isEffect() {}
func (CreateEffect) isEffect() {}

// ApplyCommand folds one user action into the form state. It is a pure
// function: no remote call happens here, effects are returned for the caller
// to dispatch.
func ApplyCommand(state RaffleFormState, cmd Command) (RaffleFormState, Effect) {
	next := state
	next.FieldErrors = map[string]string{}

	switch c := cmd.(type) {
	case SearchChanged:
		next.SearchTerm = c.Term
		next.Selected = nil
		if utf8.RuneCountInString(c.Term) < MinSearchLength {
			next.SearchResults = nil
			return next, nil
		}
		next.SearchSeq++
		return next, SearchEffect{Term: c.Term, Seq: next.SearchSeq}

	case ProductSelected:
		product := c.Product
		next.Selected = &product
		next.SearchTerm = product.Title
		next.SearchResults = nil
		return next, nil

	case QuantityChanged:
		next.Quantity = c.Quantity
		return next, nil

	case DeadlineChanged:
		next.DeadlineDate = c.Date
		next.DeadlineTime = c.Time
		return next, nil

	case ActiveToggled:
		next.IsActive = c.IsActive
		return next, nil

	case Submit:
		if next.Selected == nil {
			next.FieldErrors["productId"] = "A product must be selected for the raffle"
			return next, nil
		}
		deadline, err := models.ComposeDeadline(next.DeadlineDate, next.DeadlineTime)
		if err != nil {
			next.FieldErrors["deadline"] = "Deadline date and time are invalid"
			return next, nil
		}
		return next, CreateEffect{Input: models.RaffleInput{
			ProductID:         next.Selected.ID,
			ProductHandle:     next.Selected.Handle,
			ProductTitle:      next.Selected.Title,
			QuantityAvailable: next.Quantity,
			Deadline:          deadline,
			IsActive:          next.IsActive,
		}}
	}

	return next, nil
}

// ApplySearchResults applies a search response to the state only when its
// sequence number matches the latest issued search. Stale responses leave the
// state untouched and report applied == false.
func ApplySearchResults(state RaffleFormState, seq uint64, results []models.Product) (RaffleFormState, bool) {
	if seq != state.SearchSeq {
		return state, false
	}
	next := state
	next.SearchResults = results
	return next, true
}
