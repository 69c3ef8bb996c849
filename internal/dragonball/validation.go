package dragonball

import (
	"strconv"

	apierrors "github.com/olgasafonova/dragonball-mcp-server/internal/errors"
)

// ValidatePositive checks that value is a positive integer.
// No upper bound is enforced; the API decides what it accepts.
func ValidatePositive(field string, value int) error {
	if value < 1 {
		return apierrors.NewValidationError(field, strconv.Itoa(value), "must be a positive integer")
	}
	return nil
}

// ValidateListArgs validates listing arguments after defaults have been applied.
func ValidateListArgs(args ListCharactersArgs) error {
	if err := ValidatePositive("page", args.Page); err != nil {
		return err
	}
	return ValidatePositive("limit", args.Limit)
}

// ValidateCharacterID validates a character id.
func ValidateCharacterID(id int) error {
	return ValidatePositive("id", id)
}
