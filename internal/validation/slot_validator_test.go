package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/ownessay/ownessay-backend/internal/apperrors"
	"github.com/ownessay/ownessay-backend/internal/types"
)

func validReading() map[string]interface{} {
	return map[string]interface{}{
		"quote":   "The unexamined life is not worth living",
		"author":  "Socrates",
		"thought": "Worth sitting with.",
	}
}

func validHealing() map[string]interface{} {
	return map[string]interface{}{
		"activity": "walk",
		"duration": 30,
		"result":   "felt calmer",
	}
}

func wantValidationError(t *testing.T, err error, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", message)
	}
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected validation kind, got %v", err)
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperrors.Error, got %T", err)
	}
	if appErr.Message != message {
		t.Fatalf("expected message %q, got %q", message, appErr.Message)
	}
}

func TestValidate_UnknownSlotType(t *testing.T) {
	err := Validate(types.SlotType("NAPPING"), map[string]interface{}{})
	if !apperrors.IsKind(err, apperrors.KindInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestValidate_CoversAllSlotTypes(t *testing.T) {
	for _, slotType := range types.AllSlotTypes() {
		if _, err := ForSlot(slotType); err != nil {
			t.Fatalf("no validator for %s: %v", slotType, err)
		}
	}
}

func TestReading_Valid(t *testing.T) {
	if err := Validate(types.SlotReading, validReading()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReading_EmptyContent(t *testing.T) {
	wantValidationError(t, Validate(types.SlotReading, map[string]interface{}{}), "reading record must not be empty")
	wantValidationError(t, Validate(types.SlotReading, nil), "reading record must not be empty")
}

func TestReading_PresenceBeforeLength(t *testing.T) {
	content := validReading()
	content["quote"] = "   "
	content["thought"] = strings.Repeat("a", 2000)
	wantValidationError(t, Validate(types.SlotReading, content), "please enter a quote")
}

func TestReading_QuoteTooLong(t *testing.T) {
	content := validReading()
	content["quote"] = strings.Repeat("가", 501)
	wantValidationError(t, Validate(types.SlotReading, content), "quote must be 500 characters or fewer")

	content["quote"] = strings.Repeat("가", 500)
	if err := Validate(types.SlotReading, content); err != nil {
		t.Fatalf("500 runes should pass: %v", err)
	}
}

func TestReading_ThoughtTooLong(t *testing.T) {
	content := validReading()
	content["thought"] = strings.Repeat("b", 1001)
	wantValidationError(t, Validate(types.SlotReading, content), "thoughts must be 1000 characters or fewer")
}

func TestReading_NumericFieldCountsAsPresent(t *testing.T) {
	content := validReading()
	content["author"] = float64(42)
	if err := Validate(types.SlotReading, content); err != nil {
		t.Fatalf("numeric author should be rendered as text: %v", err)
	}
}

func TestConsulting_Valid(t *testing.T) {
	content := map[string]interface{}{
		"question": "stay or go?",
		"choice":   "stay",
		"result":   "asked for advice first",
	}
	if err := Validate(types.SlotConsulting, content); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConsulting_MissingFields(t *testing.T) {
	wantValidationError(t, Validate(types.SlotConsulting, map[string]interface{}{}), "consulting record must not be empty")
	wantValidationError(t, Validate(types.SlotConsulting, map[string]interface{}{
		"question": "q", "choice": "", "result": "r",
	}), "please enter a choice")
}

func TestConsulting_QuestionTooLong(t *testing.T) {
	content := map[string]interface{}{
		"question": strings.Repeat("q", 201),
		"choice":   "c",
		"result":   "r",
	}
	wantValidationError(t, Validate(types.SlotConsulting, content), "question must be 200 characters or fewer")
}

func TestHealing_Valid(t *testing.T) {
	if err := Validate(types.SlotHealing, validHealing()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHealing_DurationMissing(t *testing.T) {
	content := validHealing()
	delete(content, "duration")
	wantValidationError(t, Validate(types.SlotHealing, content), "please enter a duration")

	content["duration"] = nil
	wantValidationError(t, Validate(types.SlotHealing, content), "please enter a duration")
}

func TestHealing_DurationNotANumber(t *testing.T) {
	content := validHealing()
	content["duration"] = "abc"
	wantValidationError(t, Validate(types.SlotHealing, content), "duration must be a number")
}

func TestHealing_DurationFormatInvalid(t *testing.T) {
	content := validHealing()
	content["duration"] = 1.5
	wantValidationError(t, Validate(types.SlotHealing, content), "duration format is invalid")

	content["duration"] = []interface{}{30}
	wantValidationError(t, Validate(types.SlotHealing, content), "duration format is invalid")
}

func TestHealing_DurationBounds(t *testing.T) {
	content := validHealing()
	content["duration"] = 0
	wantValidationError(t, Validate(types.SlotHealing, content), "duration must be greater than 0")

	content["duration"] = 7201
	wantValidationError(t, Validate(types.SlotHealing, content), "duration must be 7200 minutes or fewer")

	content["duration"] = 7200
	if err := Validate(types.SlotHealing, content); err != nil {
		t.Fatalf("7200 should pass: %v", err)
	}
}

func TestHealing_DurationFromJSONNumber(t *testing.T) {
	content := validHealing()
	// encoding/json decodes numbers into float64.
	content["duration"] = float64(45)
	if err := Validate(types.SlotHealing, content); err != nil {
		t.Fatalf("integral float should pass: %v", err)
	}

	content["duration"] = " 45 "
	if err := Validate(types.SlotHealing, content); err != nil {
		t.Fatalf("numeric string should pass: %v", err)
	}
}

func TestDiary_Valid(t *testing.T) {
	content := map[string]interface{}{
		"question": "what stood out today?",
		"content":  "a long quiet morning",
		"emotion":  "calm",
	}
	if err := Validate(types.SlotDiary, content); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDiary_MissingEmotion(t *testing.T) {
	content := map[string]interface{}{
		"question": "q",
		"content":  "c",
		"emotion":  " ",
	}
	wantValidationError(t, Validate(types.SlotDiary, content), "please enter an emotion")
}

func TestDiary_ContentTooLong(t *testing.T) {
	content := map[string]interface{}{
		"question": "q",
		"content":  strings.Repeat("c", 2001),
		"emotion":  "calm",
	}
	wantValidationError(t, Validate(types.SlotDiary, content), "content must be 2000 characters or fewer")
}

func TestValidate_Idempotent(t *testing.T) {
	content := validHealing()
	for i := 0; i < 3; i++ {
		if err := Validate(types.SlotHealing, content); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}
	bad := validHealing()
	bad["duration"] = "abc"
	first := Validate(types.SlotHealing, bad)
	second := Validate(types.SlotHealing, bad)
	if first == nil || second == nil || first.Error() != second.Error() {
		t.Fatalf("re-validation changed the outcome: %v vs %v", first, second)
	}
}
