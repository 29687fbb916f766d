package types

import (
	"strings"

	"github.com/ownessay/ownessay-backend/internal/apperrors"
)

type PublishStatus string

const (
	PublishPrivate PublishStatus = "PRIVATE"
	PublishShared  PublishStatus = "SHARED"
	PublishPublic  PublishStatus = "PUBLIC"
)

func PublishStatusFromString(value string) (PublishStatus, error) {
	switch PublishStatus(strings.ToUpper(value)) {
	case PublishPrivate:
		return PublishPrivate, nil
	case PublishShared:
		return PublishShared, nil
	case PublishPublic:
		return PublishPublic, nil
	}
	return "", apperrors.Newf(apperrors.KindInvalidArgument, "invalid publish status: %s", value)
}

type EssayTheme string

const (
	ThemeRecovery  EssayTheme = "RECOVERY"
	ThemeGratitude EssayTheme = "GRATITUDE"
	ThemeChallenge EssayTheme = "CHALLENGE"
	ThemeGrowth    EssayTheme = "GROWTH"
)

func EssayThemeFromString(value string) (EssayTheme, error) {
	switch EssayTheme(strings.ToUpper(value)) {
	case ThemeRecovery:
		return ThemeRecovery, nil
	case ThemeGratitude:
		return ThemeGratitude, nil
	case ThemeChallenge:
		return ThemeChallenge, nil
	case ThemeGrowth:
		return ThemeGrowth, nil
	}
	return "", apperrors.Newf(apperrors.KindInvalidArgument, "invalid essay theme: %s", value)
}
