package tools

// AllTools contains all tool specifications for the Dragon Ball MCP server.
// Tool descriptions follow a structured format for LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from the other tool
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	{
		Name:     "dragonball-characters",
		Method:   "ListCharacters",
		Title:    "List Dragon Ball Characters",
		Category: "list",
		Description: `Get a paginated list of Dragon Ball characters.

USE WHEN: User asks "who are the Dragon Ball characters", "list characters", "show me page 3 of characters", or needs a character id.

NOT FOR: Full details of one character such as origin planet or transformations (use dragonball-character-detail).

PARAMETERS:
- page: Page number, starting at 1 (default 1)
- limit: Characters per page (default 10)

RETURNS: A summary line and the API response: items (id, name, ki, maxKi, race, gender, affiliation, image), meta (totalItems, itemCount, itemsPerPage, totalPages, currentPage) and links.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "dragonball-character-detail",
		Method:   "GetCharacter",
		Title:    "Get Dragon Ball Character Detail",
		Category: "read",
		Description: `Get detailed information about one Dragon Ball character by id.

USE WHEN: User asks "tell me about Goku", "what transformations does Vegeta have", "where is Piccolo from", and the character id is known.

NOT FOR: Browsing or discovering characters (use dragonball-characters to find ids).

PARAMETERS:
- id: Character id (required, positive integer)

RETURNS: A summary (name, race, gender, affiliation, max power, origin planet, transformation count) and the full API response including originPlanet and transformations.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
}
