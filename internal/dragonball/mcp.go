package dragonball

import (
	"context"
	"fmt"
)

// MCP Tool wrapper methods
// These methods validate Args, call the client and return the Result types
// registered as tool output.

// ListCharactersMCP is the MCP wrapper for ListCharacters
func (c *Client) ListCharactersMCP(ctx context.Context, args ListCharactersArgs) (CharacterPage, error) {
	args = args.withDefaults()
	if err := ValidateListArgs(args); err != nil {
		return CharacterPage{}, err
	}

	page, err := c.ListCharacters(ctx, args.Page, args.Limit)
	if err != nil {
		return CharacterPage{}, fmt.Errorf("failed to fetch characters (page %d, limit %d): %w", args.Page, args.Limit, err)
	}
	return *page, nil
}

// GetCharacterMCP is the MCP wrapper for GetCharacter
func (c *Client) GetCharacterMCP(ctx context.Context, args GetCharacterArgs) (CharacterDetail, error) {
	if err := ValidateCharacterID(args.ID); err != nil {
		return CharacterDetail{}, err
	}

	detail, err := c.GetCharacter(ctx, args.ID)
	if err != nil {
		return CharacterDetail{}, fmt.Errorf("failed to fetch character %d: %w", args.ID, err)
	}
	return *detail, nil
}
