package undercover

import (
	"fmt"
	"math/rand"
)

var firstNames = []string{
	"John", "Jane", "Alex", "Sam", "Mike", "Sarah", "David", "Emma",
	"Chris", "Lisa", "Tom", "Anna", "Mark", "Laura", "James", "Amy",
	"Daniel", "Olivia", "Ryan", "Emily",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Jones", "Brown", "Davis", "Miller",
	"Wilson", "Moore", "Taylor", "Anderson", "Thomas", "Jackson", "White",
	"Harris", "Martin", "Thompson", "Garcia", "Martinez", "Robinson",
}

// GenerateNames produces n distinct display names. First names are never
// repeated within a batch; last names may be. Fails when n exceeds the
// first-name pool.
func GenerateNames(rng *rand.Rand, n int) ([]string, error) {
	if n > len(firstNames) {
		return nil, fmt.Errorf("%w: %d > %d", ErrNamePoolExhausted, n, len(firstNames))
	}

	names := make([]string, 0, n)
	used := make(map[int]bool, n)

	for i := 0; i < n; i++ {
		idx := rng.Intn(len(firstNames))
		for used[idx] {
			idx = rng.Intn(len(firstNames))
		}
		used[idx] = true

		names = append(names, firstNames[idx]+" "+lastNames[rng.Intn(len(lastNames))])
	}

	return names, nil
}
