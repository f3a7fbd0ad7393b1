package undercover

import (
	"fmt"
	"math/rand"
)

// WordPair is a pair of related but different words. Civilians get the
// first, Undercover players the second.
type WordPair struct {
	Word1 string `json:"word1"`
	Word2 string `json:"word2"`
}

var wordPairs = []WordPair{
	{"Apple", "Banana"},
	{"Dog", "Cat"},
	{"Sun", "Moon"},
	{"Coffee", "Tea"},
	{"Car", "Bus"},
	{"Beach", "Mountain"},
	{"Book", "Magazine"},
	{"Guitar", "Piano"},
	{"Sneakers", "Sandals"},
	{"Pencil", "Pen"},
	{"Phone", "Computer"},
	{"River", "Lake"},
	{"Winter", "Summer"},
	{"Fork", "Spoon"},
	{"Chair", "Sofa"},
	{"Soccer", "Basketball"},
	{"Shirt", "Jacket"},
	{"Camera", "Binoculars"},
	{"Butterfly", "Bee"},
	{"Train", "Subway"},
	{"Pizza", "Burger"},
	{"Hotel", "Motel"},
	{"Violin", "Cello"},
	{"Theater", "Cinema"},
	{"Doctor", "Nurse"},
	{"Painting", "Drawing"},
	{"Ocean", "Sea"},
	{"Airplane", "Helicopter"},
	{"Sweater", "Hoodie"},
	{"Strawberry", "Raspberry"},
	{"Milk", "Juice"},
	{"Mouse", "Rat"},
	{"Breakfast", "Dinner"},
	{"Sky", "Cloud"},
	{"Keyboard", "Mouse"},
	{"Map", "Globe"},
	{"Fire", "Smoke"},
	{"Hospital", "Clinic"},
	{"Backpack", "Suitcase"},
	{"Bicycle", "Motorcycle"},
	{"Socks", "Gloves"},
	{"Watch", "Clock"},
	{"Bowl", "Plate"},
	{"Elephant", "Giraffe"},
	{"Diamond", "Ruby"},
	{"Scissors", "Knife"},
	{"Hammer", "Screwdriver"},
	{"Shower", "Bath"},
	{"Glasses", "Contacts"},
	{"Football", "Rugby"},
}

// RandomPair draws one pair uniformly from the table. The table is
// non-empty by construction, so there is no error path.
func RandomPair(rng *rand.Rand) WordPair {
	return wordPairs[rng.Intn(len(wordPairs))]
}

// PairAt returns the pair at a fixed index, for deterministic callers.
func PairAt(index int) (WordPair, error) {
	if index < 0 || index >= len(wordPairs) {
		return WordPair{}, fmt.Errorf("word pair index out of range: %d (valid range 0-%d)", index, len(wordPairs)-1)
	}
	return wordPairs[index], nil
}

// PairCount returns the size of the word pair table.
func PairCount() int {
	return len(wordPairs)
}
