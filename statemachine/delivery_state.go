package statemachine

import (
	"errors"

	"stellar-delivery-api/models"
)

// deliveryTransitions: a delivery only ever moves forward, and only the
// assigned deliverer drives it.
var deliveryTransitions = map[models.DeliveryStatus]models.DeliveryStatus{
	models.DeliveryAssigned:  models.DeliveryPickedUp,
	models.DeliveryPickedUp:  models.DeliveryInTransit,
	models.DeliveryInTransit: models.DeliveryCompleted,
}

// CanTransitionDelivery checks a delivery status change.
func CanTransitionDelivery(from, to models.DeliveryStatus) error {
	if deliveryTransitions[from] == to {
		return nil
	}
	next, ok := deliveryTransitions[from]
	if !ok {
		return errors.New("invalid transition: " + string(from) + " is a terminal state")
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			". The only valid next state is " + string(next),
	)
}

// NextDeliveryStatus returns the single legal next state, or "" for terminal.
func NextDeliveryStatus(from models.DeliveryStatus) models.DeliveryStatus {
	return deliveryTransitions[from]
}
