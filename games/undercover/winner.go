package undercover

// CheckWinner evaluates the win conditions over the active roster and
// returns the winner, or nil if the game continues.
//
// The rules are checked in order, and the order matters: the survival rules
// fire before the elimination rules so the game stops as soon as the active
// count becomes critically small, even when a majority rule would not yet
// trigger.
func CheckWinner(players []Player) *Winner {
	var active []Player
	for _, p := range players {
		if !p.IsEliminated {
			active = append(active, p)
		}
	}

	// Rule 1: a single survivor wins outright.
	if len(active) == 1 {
		return &Winner{Role: active[0].Role, Reason: ReasonSurvival}
	}

	// Rule 2: Mr. White wins by reaching the final two.
	if len(active) == 2 {
		for _, p := range active {
			if p.Role == RoleMrWhite {
				return &Winner{Role: RoleMrWhite, Reason: ReasonSurvival}
			}
		}
	}

	var civilians, undercover, mrWhite int
	for _, p := range active {
		switch p.Role {
		case RoleCivilian:
			civilians++
		case RoleUndercover:
			undercover++
		case RoleMrWhite:
			mrWhite++
		}
	}

	// Rule 3: civilians win once every impostor is out.
	if undercover == 0 && mrWhite == 0 && civilians > 0 {
		return &Winner{Role: RoleCivilian, Reason: ReasonElimination}
	}

	// Rule 4: undercover win by matching or outnumbering the civilians,
	// provided no Mr. White remains.
	if mrWhite == 0 && undercover > 0 && undercover >= civilians {
		return &Winner{Role: RoleUndercover, Reason: ReasonElimination}
	}

	return nil
}
