package undercover

import (
	"fmt"
	"math/rand"
)

// Distribution fixes how many of each role a game starts with.
type Distribution struct {
	Civilians  int `json:"civilians"`
	Undercover int `json:"undercover"`
	MrWhite    int `json:"mrWhite"`
}

// Validate checks the distribution against a player count: counts must be
// non-negative, sum to playerCount, and include at least one civilian.
func (d Distribution) Validate(playerCount int) error {
	if d.Civilians < 0 || d.Undercover < 0 || d.MrWhite < 0 {
		return fmt.Errorf("%w: negative role count", ErrInvalidDistribution)
	}
	if d.Civilians+d.Undercover+d.MrWhite != playerCount {
		return fmt.Errorf("%w: %d+%d+%d != %d", ErrInvalidDistribution,
			d.Civilians, d.Undercover, d.MrWhite, playerCount)
	}
	if d.Civilians < 1 {
		return ErrNoCivilians
	}
	return nil
}

// DefaultDistribution is the setup-screen heuristic: one Mr. White, with
// undercover count scaling by table size. It is advisory only; the engine
// accepts any distribution that passes Validate.
func DefaultDistribution(playerCount int) Distribution {
	undercover := 1
	switch {
	case playerCount > 10:
		undercover = 3
	case playerCount > 6:
		undercover = 2
	}

	return Distribution{
		Civilians:  playerCount - undercover - 1,
		Undercover: undercover,
		MrWhite:    1,
	}
}

// AssignRoles builds the role multiset described by d and returns it as a
// uniform random permutation (Fisher-Yates).
func AssignRoles(rng *rand.Rand, d Distribution) []Role {
	roles := make([]Role, 0, d.Civilians+d.Undercover+d.MrWhite)
	for i := 0; i < d.Civilians; i++ {
		roles = append(roles, RoleCivilian)
	}
	for i := 0; i < d.Undercover; i++ {
		roles = append(roles, RoleUndercover)
	}
	for i := 0; i < d.MrWhite; i++ {
		roles = append(roles, RoleMrWhite)
	}

	for i := len(roles) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		roles[i], roles[j] = roles[j], roles[i]
	}

	return roles
}
