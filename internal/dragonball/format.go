package dragonball

import (
	"fmt"
	"strings"
)

// UnknownPlanet is shown when a character has no origin planet
const UnknownPlanet = "Unknown"

// Summary renders the one-line listing summary shown to the user.
func (p CharacterPage) Summary() string {
	return fmt.Sprintf("Retrieved %d characters from page %d. Total: %d characters available.",
		p.Meta.ItemCount, p.RequestedPage(), p.Meta.TotalItems)
}

// Summary renders the multi-line character summary shown to the user.
func (d CharacterDetail) Summary() string {
	planet := UnknownPlanet
	if d.OriginPlanet != nil && d.OriginPlanet.Name != "" {
		planet = d.OriginPlanet.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Character: %s\n", d.Name)
	fmt.Fprintf(&b, "Race: %s\n", d.Race)
	fmt.Fprintf(&b, "Gender: %s\n", d.Gender)
	fmt.Fprintf(&b, "Affiliation: %s\n", d.Affiliation)
	fmt.Fprintf(&b, "Max Power: %s\n", d.MaxKi)
	fmt.Fprintf(&b, "Origin Planet: %s\n", planet)
	fmt.Fprintf(&b, "Transformations: %d available", len(d.Transformations))
	return b.String()
}
