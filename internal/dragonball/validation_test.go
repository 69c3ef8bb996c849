package dragonball

import (
	"testing"

	apierrors "github.com/olgasafonova/dragonball-mcp-server/internal/errors"
)

func TestValidateCharacterID(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"first character", 1, false},
		{"large id", 1_000_000, false},
		{"zero", 0, true},
		{"negative", -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCharacterID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCharacterID(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !apierrors.IsValidation(err) {
				t.Errorf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateListArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      ListCharactersArgs
		wantErr   bool
		wantField string
	}{
		{"defaults", ListCharactersArgs{Page: 1, Limit: 10}, false, ""},
		{"huge values pass through", ListCharactersArgs{Page: 99999, Limit: 100000}, false, ""},
		{"negative page", ListCharactersArgs{Page: -1, Limit: 10}, true, "page"},
		{"zero limit", ListCharactersArgs{Page: 1, Limit: 0}, true, "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateListArgs(%+v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			verr, ok := err.(*apierrors.ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestListCharactersArgs_WithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   ListCharactersArgs
		want ListCharactersArgs
	}{
		{"empty", ListCharactersArgs{}, ListCharactersArgs{Page: DefaultPage, Limit: DefaultLimit}},
		{"page only", ListCharactersArgs{Page: 3}, ListCharactersArgs{Page: 3, Limit: DefaultLimit}},
		{"limit only", ListCharactersArgs{Limit: 25}, ListCharactersArgs{Page: DefaultPage, Limit: 25}},
		{"negative kept for validation", ListCharactersArgs{Page: -2, Limit: 5}, ListCharactersArgs{Page: -2, Limit: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.withDefaults(); got != tt.want {
				t.Errorf("withDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
