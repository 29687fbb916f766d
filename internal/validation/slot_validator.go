// Package validation rejects malformed slot content before it is persisted.
// One validator per slot type; dispatch is total over the four slot types
// and every failure carries a single human-readable reason.
package validation

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ownessay/ownessay-backend/internal/apperrors"
	"github.com/ownessay/ownessay-backend/internal/types"
)

type SlotValidator interface {
	Validate(content map[string]interface{}) error
}

var validators = map[types.SlotType]SlotValidator{
	types.SlotReading:    readingValidator{},
	types.SlotConsulting: consultingValidator{},
	types.SlotHealing:    healingValidator{},
	types.SlotDiary:      diaryValidator{},
}

// ForSlot returns the validator registered for slotType. The registry
// covers the whole closed slot-type set; anything else is rejected rather
// than silently falling back.
func ForSlot(slotType types.SlotType) (SlotValidator, error) {
	v, ok := validators[slotType]
	if !ok {
		return nil, apperrors.Newf(apperrors.KindInvalidArgument, "no validator for slot type: %s", slotType)
	}
	return v, nil
}

// Validate dispatches content to the slot's rule set.
func Validate(slotType types.SlotType, content map[string]interface{}) error {
	v, err := ForSlot(slotType)
	if err != nil {
		return err
	}
	return v.Validate(content)
}

type readingValidator struct{}

func (readingValidator) Validate(content map[string]interface{}) error {
	if len(content) == 0 {
		return apperrors.New(apperrors.KindValidation, "reading record must not be empty")
	}
	quote := getString(content, "quote")
	author := getString(content, "author")
	thought := getString(content, "thought")

	if isBlank(quote) {
		return apperrors.New(apperrors.KindValidation, "please enter a quote")
	}
	if isBlank(author) {
		return apperrors.New(apperrors.KindValidation, "please enter an author")
	}
	if isBlank(thought) {
		return apperrors.New(apperrors.KindValidation, "please enter your thoughts")
	}
	if utf8.RuneCountInString(quote) > 500 {
		return apperrors.New(apperrors.KindValidation, "quote must be 500 characters or fewer")
	}
	if utf8.RuneCountInString(thought) > 1000 {
		return apperrors.New(apperrors.KindValidation, "thoughts must be 1000 characters or fewer")
	}
	return nil
}

type consultingValidator struct{}

func (consultingValidator) Validate(content map[string]interface{}) error {
	if len(content) == 0 {
		return apperrors.New(apperrors.KindValidation, "consulting record must not be empty")
	}
	question := getString(content, "question")
	choice := getString(content, "choice")
	result := getString(content, "result")

	if isBlank(question) {
		return apperrors.New(apperrors.KindValidation, "please enter a question")
	}
	if isBlank(choice) {
		return apperrors.New(apperrors.KindValidation, "please enter a choice")
	}
	if isBlank(result) {
		return apperrors.New(apperrors.KindValidation, "please enter a result")
	}
	if utf8.RuneCountInString(question) > 200 {
		return apperrors.New(apperrors.KindValidation, "question must be 200 characters or fewer")
	}
	if utf8.RuneCountInString(result) > 500 {
		return apperrors.New(apperrors.KindValidation, "result must be 500 characters or fewer")
	}
	return nil
}

type healingValidator struct{}

func (healingValidator) Validate(content map[string]interface{}) error {
	if len(content) == 0 {
		return apperrors.New(apperrors.KindValidation, "healing record must not be empty")
	}
	activity := getString(content, "activity")
	durationVal, hasDuration := content["duration"]
	result := getString(content, "result")

	if isBlank(activity) {
		return apperrors.New(apperrors.KindValidation, "please enter an activity")
	}
	if !hasDuration || durationVal == nil {
		return apperrors.New(apperrors.KindValidation, "please enter a duration")
	}
	duration, err := toMinutes(durationVal)
	if err != nil {
		return err
	}
	if duration <= 0 {
		return apperrors.New(apperrors.KindValidation, "duration must be greater than 0")
	}
	if duration > 7200 {
		return apperrors.New(apperrors.KindValidation, "duration must be 7200 minutes or fewer")
	}
	if isBlank(result) {
		return apperrors.New(apperrors.KindValidation, "please enter an activity result")
	}
	if utf8.RuneCountInString(result) > 500 {
		return apperrors.New(apperrors.KindValidation, "activity result must be 500 characters or fewer")
	}
	return nil
}

type diaryValidator struct{}

func (diaryValidator) Validate(content map[string]interface{}) error {
	if len(content) == 0 {
		return apperrors.New(apperrors.KindValidation, "diary record must not be empty")
	}
	question := getString(content, "question")
	diaryContent := getString(content, "content")
	emotion := getString(content, "emotion")

	if isBlank(question) {
		return apperrors.New(apperrors.KindValidation, "please enter a question")
	}
	if isBlank(diaryContent) {
		return apperrors.New(apperrors.KindValidation, "please enter some content")
	}
	if isBlank(emotion) {
		return apperrors.New(apperrors.KindValidation, "please enter an emotion")
	}
	if utf8.RuneCountInString(question) > 200 {
		return apperrors.New(apperrors.KindValidation, "question must be 200 characters or fewer")
	}
	if utf8.RuneCountInString(diaryContent) > 2000 {
		return apperrors.New(apperrors.KindValidation, "content must be 2000 characters or fewer")
	}
	return nil
}

func getString(content map[string]interface{}, key string) string {
	val, ok := content[key]
	if !ok || val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	// Numbers and booleans passed for a text field still count as present;
	// render them the way encoding/json would.
	switch v := val.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// toMinutes coerces a decoded JSON value to whole minutes. A non-numeric
// string is reported as "must be a number", distinct from a missing value;
// anything else non-integral is a format error.
func toMinutes(val interface{}) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, apperrors.New(apperrors.KindValidation, "duration format is invalid")
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, apperrors.New(apperrors.KindValidation, "duration must be a number")
		}
		return n, nil
	default:
		return 0, apperrors.New(apperrors.KindValidation, "duration format is invalid")
	}
}
