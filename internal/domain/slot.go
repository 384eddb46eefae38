package domain

import (
	"errors"
	"fmt"
)

// SlotType identifies one of the fixed ad placements on the storefront
type SlotType string

const (
	// SlotMainRolling main page rolling banner, positions 1-10
	SlotMainRolling SlotType = "MAIN_ROLLING"
	// SlotMainSide main page side banner, positions 1-3
	SlotMainSide SlotType = "MAIN_SIDE"
	// SlotCategoryTop top of a category product list, positions 1-5, requires a category
	SlotCategoryTop SlotType = "CATEGORY_TOP"
	// SlotOrderComplete order completion page, positions 1-5
	SlotOrderComplete SlotType = "ORDER_COMPLETE"
)

// ErrInvalidSlotKind is returned for an unknown slot type, an out-of-range
// position or a missing/extraneous category.
var ErrInvalidSlotKind = errors.New("domain: invalid slot kind")

// slotCapacities valid position domain per slot type
var slotCapacities = map[SlotType]int{
	SlotMainRolling:   10,
	SlotMainSide:      3,
	SlotCategoryTop:   5,
	SlotOrderComplete: 5,
}

// AllSlotTypes lists every known slot type
var AllSlotTypes = []SlotType{
	SlotMainRolling,
	SlotMainSide,
	SlotCategoryTop,
	SlotOrderComplete,
}

// ParseSlotType validates and converts a string into a SlotType
func ParseSlotType(s string) (SlotType, error) {
	t := SlotType(s)
	if _, ok := slotCapacities[t]; !ok {
		return "", fmt.Errorf("%w: unknown slot type %q", ErrInvalidSlotKind, s)
	}
	return t, nil
}

// Capacity returns the number of positions of a slot type (0 for unknown types)
func Capacity(t SlotType) int {
	return slotCapacities[t]
}

// RequiresCategory returns true if the slot type is partitioned by category
func RequiresCategory(t SlotType) bool {
	return t == SlotCategoryTop
}

// UsesBanner returns true if the slot type displays a banner image
func UsesBanner(t SlotType) bool {
	return t == SlotMainRolling || t == SlotMainSide
}

// SlotID is the identity of a single bookable slot: (type, position, category).
// Category is empty for every type except CATEGORY_TOP. SlotID is a value type:
// two SlotIDs address the same slot iff they are equal.
type SlotID struct {
	Type     SlotType
	Position int
	Category string
}

// Validate checks the slot identity against the catalog
func (s SlotID) Validate() error {
	capacity, ok := slotCapacities[s.Type]
	if !ok {
		return fmt.Errorf("%w: unknown slot type %q", ErrInvalidSlotKind, s.Type)
	}
	if s.Position < 1 || s.Position > capacity {
		return fmt.Errorf("%w: position %d out of range 1..%d for %s",
			ErrInvalidSlotKind, s.Position, capacity, s.Type)
	}
	if RequiresCategory(s.Type) && s.Category == "" {
		return fmt.Errorf("%w: %s requires a category", ErrInvalidSlotKind, s.Type)
	}
	if !RequiresCategory(s.Type) && s.Category != "" {
		return fmt.Errorf("%w: %s does not take a category", ErrInvalidSlotKind, s.Type)
	}
	return nil
}

// String returns a human-readable slot identity
func (s SlotID) String() string {
	if s.Category != "" {
		return fmt.Sprintf("%s/%s#%d", s.Type, s.Category, s.Position)
	}
	return fmt.Sprintf("%s#%d", s.Type, s.Position)
}
