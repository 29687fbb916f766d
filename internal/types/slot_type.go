package types

import (
	"strings"

	"github.com/ownessay/ownessay-backend/internal/apperrors"
)

// SlotType is one of the four fixed daily activity slots.
type SlotType string

const (
	SlotReading    SlotType = "READING"
	SlotConsulting SlotType = "CONSULTING"
	SlotHealing    SlotType = "HEALING"
	SlotDiary      SlotType = "DIARY"
)

// SlotsPerDay is the fixed daily slot capacity.
const SlotsPerDay = 4

func AllSlotTypes() []SlotType {
	return []SlotType{SlotReading, SlotConsulting, SlotHealing, SlotDiary}
}

func SlotTypeFromString(value string) (SlotType, error) {
	switch SlotType(strings.ToUpper(value)) {
	case SlotReading:
		return SlotReading, nil
	case SlotConsulting:
		return SlotConsulting, nil
	case SlotHealing:
		return SlotHealing, nil
	case SlotDiary:
		return SlotDiary, nil
	}
	return "", apperrors.Newf(apperrors.KindInvalidArgument, "invalid slot type: %s", value)
}
