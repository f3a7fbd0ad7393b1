package undercover

import "testing"

func roster(roles ...Role) []Player {
	players := make([]Player, 0, len(roles))
	for i, r := range roles {
		players = append(players, Player{
			ID:   string(rune('a' + i)),
			Role: r,
		})
	}
	return players
}

func eliminate(players []Player, indices ...int) []Player {
	for _, i := range indices {
		players[i].IsEliminated = true
	}
	return players
}

func TestCheckWinner(t *testing.T) {
	tcs := []struct {
		name       string
		players    []Player
		wantRole   Role
		wantReason string
		wantNil    bool
	}{
		{
			name:       "single civilian survivor",
			players:    eliminate(roster(RoleCivilian, RoleUndercover, RoleCivilian), 1, 2),
			wantRole:   RoleCivilian,
			wantReason: ReasonSurvival,
		},
		{
			name:       "single undercover survivor",
			players:    eliminate(roster(RoleCivilian, RoleUndercover, RoleCivilian), 0, 2),
			wantRole:   RoleUndercover,
			wantReason: ReasonSurvival,
		},
		{
			name:       "mr white reaches final two",
			players:    eliminate(roster(RoleCivilian, RoleCivilian, RoleUndercover, RoleMrWhite), 1, 2),
			wantRole:   RoleMrWhite,
			wantReason: ReasonSurvival,
		},
		{
			name:       "civilians sweep",
			players:    eliminate(roster(RoleCivilian, RoleCivilian, RoleCivilian, RoleUndercover, RoleMrWhite), 3, 4),
			wantRole:   RoleCivilian,
			wantReason: ReasonElimination,
		},
		{
			name:       "undercover reach parity",
			players:    eliminate(roster(RoleCivilian, RoleCivilian, RoleCivilian, RoleUndercover, RoleUndercover), 0),
			wantRole:   RoleUndercover,
			wantReason: ReasonElimination,
		},
		{
			name:    "undercover parity blocked by mr white",
			players: eliminate(roster(RoleCivilian, RoleUndercover, RoleMrWhite, RoleCivilian), 3),
			wantNil: true,
		},
		{
			name:    "game continues",
			players: roster(RoleCivilian, RoleCivilian, RoleCivilian, RoleUndercover, RoleMrWhite),
			wantNil: true,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			winner := CheckWinner(tc.players)
			if tc.wantNil {
				if winner != nil {
					t.Fatalf("CheckWinner = %+v, want nil", winner)
				}
				return
			}
			if winner == nil {
				t.Fatalf("CheckWinner = nil, want {%s, %s}", tc.wantRole, tc.wantReason)
			}
			if winner.Role != tc.wantRole || winner.Reason != tc.wantReason {
				t.Fatalf("CheckWinner = {%s, %s}, want {%s, %s}", winner.Role, winner.Reason, tc.wantRole, tc.wantReason)
			}
		})
	}
}

// TestCheckWinnerSurvivalPrecedence pins the rule ordering: with one
// civilian and one Mr. White left, the survival rule must fire before the
// civilian elimination rule could.
func TestCheckWinnerSurvivalPrecedence(t *testing.T) {
	players := eliminate(
		roster(RoleCivilian, RoleCivilian, RoleCivilian, RoleCivilian, RoleUndercover, RoleMrWhite),
		1, 2, 3, 4,
	)

	winner := CheckWinner(players)
	if winner == nil {
		t.Fatal("CheckWinner = nil, want Mr. White by survival")
	}
	if winner.Role != RoleMrWhite || winner.Reason != ReasonSurvival {
		t.Fatalf("CheckWinner = {%s, %s}, want {%s, %s}", winner.Role, winner.Reason, RoleMrWhite, ReasonSurvival)
	}
}
