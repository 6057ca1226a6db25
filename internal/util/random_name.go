package util

import (
	"fmt"
	"math/rand"
	"time"
)

var random = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec

var adjectives = []string{
	"Bluffing", "Folding", "Raising", "Stacking", "Shuffling", "Grinning", "Patient", "Reckless", "Lucky",
	"Unlucky", "Cunning", "Fearless", "Sneaky", "Steady", "Wild", "Quiet", "Loose", "Tight", "Daring",
	"Smiling", "Brooding", "Swift", "Stubborn", "Crafty", "Bold", "Calm", "Restless", "Cheerful",
}

var animals = []string{
	"Shark", "Fish", "Donkey", "Rock", "Fox", "Owl", "Wolf", "Badger", "Raccoon", "Otter", "Walrus",
	"Heron", "Magpie", "Crow", "Lynx", "Coyote", "Ferret", "Stoat", "Marmot", "Beaver", "Mole",
	"Viper", "Falcon", "Osprey", "Pike", "Barracuda", "Mongoose", "Jackal",
}

// GetRandomName combines an adjective with an animal for players who sign
// up without a display name
func GetRandomName() string {
	adjective := adjectives[random.Intn(len(adjectives))]
	animal := animals[random.Intn(len(animals))]

	return fmt.Sprintf("%s %s", adjective, animal)
}
