package statemachine

import (
	"errors"

	"stellar-delivery-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "requester", "store", "deliverer", "admin"
}

// validOrderTransitions is the authoritative state machine definition
var validOrderTransitions = []Transition{
	// Store accepts or rejects a fresh order
	{From: models.OrderPending, To: models.OrderAccepted, Actor: "store"},
	{From: models.OrderPending, To: models.OrderCancelled, Actor: "store"},
	{From: models.OrderPending, To: models.OrderCancelled, Actor: "requester"},
	// Store starts cooking; either side can still cancel an accepted order
	{From: models.OrderAccepted, To: models.OrderCooking, Actor: "store"},
	{From: models.OrderAccepted, To: models.OrderCancelled, Actor: "store"},
	{From: models.OrderAccepted, To: models.OrderCancelled, Actor: "requester"},
	// Store marks the order ready; only the store can back out at this point
	{From: models.OrderCooking, To: models.OrderReadyForPickup, Actor: "store"},
	{From: models.OrderCooking, To: models.OrderCancelled, Actor: "store"},
	// Deliverer takes the job and completes it
	{From: models.OrderReadyForPickup, To: models.OrderDelivering, Actor: "deliverer"},
	{From: models.OrderDelivering, To: models.OrderCompleted, Actor: "deliverer"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var orderTransitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validOrderTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// OrderTransitionsFrom returns all valid next states from a given state
func OrderTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validOrderTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransitionOrder checks if a given actor can move an order between states
func CanTransitionOrder(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if orderTransitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := OrderTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// AllOrderTransitions returns the full state machine for documentation
func AllOrderTransitions() []Transition {
	return validOrderTransitions
}
