package dragonball

// Defaults for the character listing. These are the only place the defaults
// are defined; the tool input schema advertises the same values.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListCharactersArgs contains parameters for the paginated character listing
type ListCharactersArgs struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// withDefaults fills zero values with DefaultPage and DefaultLimit
func (a ListCharactersArgs) withDefaults() ListCharactersArgs {
	if a.Page == 0 {
		a.Page = DefaultPage
	}
	if a.Limit == 0 {
		a.Limit = DefaultLimit
	}
	return a
}

// GetCharacterArgs contains parameters for fetching a single character
type GetCharacterArgs struct {
	ID int `json:"id"`
}
