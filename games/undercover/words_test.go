package undercover

import (
	"math/rand"
	"testing"
)

func TestWordPairTable(t *testing.T) {
	if PairCount() < 50 {
		t.Fatalf("word pair table has %d pairs, want at least 50", PairCount())
	}

	for i, pair := range wordPairs {
		if pair.Word1 == "" || pair.Word2 == "" {
			t.Errorf("pair %d has an empty word: %+v", i, pair)
		}
		if pair.Word1 == pair.Word2 {
			t.Errorf("pair %d has identical words: %q", i, pair.Word1)
		}
	}
}

func TestRandomPairDrawsFromTable(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	known := make(map[WordPair]bool, len(wordPairs))
	for _, pair := range wordPairs {
		known[pair] = true
	}

	seen := make(map[WordPair]bool)
	for i := 0; i < 500; i++ {
		pair := RandomPair(rng)
		if !known[pair] {
			t.Fatalf("RandomPair returned a pair outside the table: %+v", pair)
		}
		seen[pair] = true
	}

	// 500 draws over 50 pairs should cover most of the table.
	if len(seen) < PairCount()/2 {
		t.Errorf("500 draws only hit %d distinct pairs", len(seen))
	}
}

func TestPairAt(t *testing.T) {
	pair, err := PairAt(0)
	if err != nil {
		t.Fatalf("PairAt(0) returned error: %v", err)
	}
	if pair != wordPairs[0] {
		t.Fatalf("PairAt(0) = %+v, want %+v", pair, wordPairs[0])
	}

	for _, index := range []int{-1, PairCount()} {
		if _, err := PairAt(index); err == nil {
			t.Errorf("PairAt(%d) returned no error", index)
		}
	}
}
