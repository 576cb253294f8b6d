package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"food-ordering-api/models"
)

// Actors allowed to drive a transition
const (
	ActorOwner    = "owner"
	ActorCustomer = "customer"
)

var ErrInvalidTransition = errors.New("invalid transition")

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor string             `json:"actor"`
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	{From: models.StatusPlaced, To: models.StatusConfirmed, Actor: ActorOwner},
	// Owner or customer can cancel until the kitchen starts
	{From: models.StatusPlaced, To: models.StatusCancelled, Actor: ActorOwner},
	{From: models.StatusPlaced, To: models.StatusCancelled, Actor: ActorCustomer},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: ActorOwner},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorOwner},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorCustomer},
	{From: models.StatusPreparing, To: models.StatusOutForDelivery, Actor: ActorOwner},
	{From: models.StatusOutForDelivery, To: models.StatusCompleted, Actor: ActorOwner},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// IsKnown reports whether s is one of the lifecycle statuses
func IsKnown(s models.OrderStatus) bool {
	for _, known := range models.AllOrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s
func IsTerminal(s models.OrderStatus) bool {
	return len(ValidTransitionsFrom(s)) == 0
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	nexts := []models.OrderStatus{}
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s is not allowed for %s; valid next states from %s: %s",
		ErrInvalidTransition, from, to, actor, from, describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// AllTransitions returns the full state machine for documentation
func AllTransitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}
