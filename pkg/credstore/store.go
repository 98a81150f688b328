// Package credstore persists the two session credentials (access and refresh
// token) under fixed slot names. Every backend treats the pair as a unit on
// clear: after ClearAll neither slot is readable.
package credstore

import (
	"context"
	"errors"
)

// Slot names a credential slot. The string values double as storage keys.
type Slot string

const (
	SlotAccess  Slot = "access_token"
	SlotRefresh Slot = "refresh_token"
)

// Slots lists every slot in a stable order.
var Slots = []Slot{SlotAccess, SlotRefresh}

// ErrUnknownSlot is returned by Set for a slot other than SlotAccess or SlotRefresh.
var ErrUnknownSlot = errors.New("credstore: unknown slot")

// Store is durable key/value storage for session credentials.
//
// Get never fails: an unavailable backend is logged and reported as absent,
// which the session layer treats the same as a signed-out user.
type Store interface {
	Get(ctx context.Context, slot Slot) (string, bool)
	Set(ctx context.Context, slot Slot, value string) error
	ClearAll(ctx context.Context) error
}

func (s Slot) valid() bool {
	return s == SlotAccess || s == SlotRefresh
}
