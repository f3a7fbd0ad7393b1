package undercover

import (
	"errors"
	"math/rand"
	"testing"
)

// TestAssignRolesMatchesDistribution shuffles many random distributions and
// asserts the returned multiset always matches the request exactly.
func TestAssignRolesMatchesDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 1000; trial++ {
		civilians := rng.Intn(10) + 1
		undercover := rng.Intn(4)
		mrWhite := rng.Intn(3)

		d := Distribution{
			Civilians:  civilians,
			Undercover: undercover,
			MrWhite:    mrWhite,
		}
		playerCount := civilians + undercover + mrWhite

		if err := d.Validate(playerCount); err != nil {
			t.Fatalf("trial %d: Validate(%+v, %d) returned error: %v", trial, d, playerCount, err)
		}

		roles := AssignRoles(rng, d)
		if len(roles) != playerCount {
			t.Fatalf("trial %d: got %d roles, want %d", trial, len(roles), playerCount)
		}

		counts := make(map[Role]int)
		for _, r := range roles {
			counts[r]++
		}

		if counts[RoleCivilian] != civilians || counts[RoleUndercover] != undercover || counts[RoleMrWhite] != mrWhite {
			t.Fatalf("trial %d: role counts %v, want %d/%d/%d", trial, counts, civilians, undercover, mrWhite)
		}
		if counts[RoleCivilian] < 1 {
			t.Fatalf("trial %d: no civilians assigned", trial)
		}
	}
}

func TestDistributionValidate(t *testing.T) {
	tcs := []struct {
		name        string
		d           Distribution
		playerCount int
		wantErr     error
	}{
		{
			name:        "valid",
			d:           Distribution{Civilians: 4, Undercover: 1, MrWhite: 1},
			playerCount: 6,
		},
		{
			name:        "no mr white",
			d:           Distribution{Civilians: 4, Undercover: 2},
			playerCount: 6,
		},
		{
			name:        "sum mismatch",
			d:           Distribution{Civilians: 4, Undercover: 1, MrWhite: 1},
			playerCount: 7,
			wantErr:     ErrInvalidDistribution,
		},
		{
			name:        "negative count",
			d:           Distribution{Civilians: 7, Undercover: -1, MrWhite: 0},
			playerCount: 6,
			wantErr:     ErrInvalidDistribution,
		},
		{
			name:        "zero civilians",
			d:           Distribution{Civilians: 0, Undercover: 5, MrWhite: 1},
			playerCount: 6,
			wantErr:     ErrNoCivilians,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.Validate(tc.playerCount)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate returned error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestDefaultDistribution(t *testing.T) {
	tcs := []struct {
		playerCount    int
		wantUndercover int
	}{
		{4, 1},
		{6, 1},
		{7, 2},
		{10, 2},
		{11, 3},
		{20, 3},
	}

	for _, tc := range tcs {
		d := DefaultDistribution(tc.playerCount)
		if d.Undercover != tc.wantUndercover {
			t.Errorf("DefaultDistribution(%d).Undercover = %d, want %d", tc.playerCount, d.Undercover, tc.wantUndercover)
		}
		if d.MrWhite != 1 {
			t.Errorf("DefaultDistribution(%d).MrWhite = %d, want 1", tc.playerCount, d.MrWhite)
		}
		if err := d.Validate(tc.playerCount); err != nil {
			t.Errorf("DefaultDistribution(%d) does not validate: %v", tc.playerCount, err)
		}
	}
}
