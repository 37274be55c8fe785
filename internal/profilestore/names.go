package profilestore

import (
	"fmt"
	"math/rand"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var adjectives = []string{
	"amber", "ancient", "autumn", "bitter", "blue", "brisk", "broad", "calm",
	"cobalt", "cold", "crimson", "crisp", "dawn", "deep", "dry", "dusty",
	"early", "emerald", "faint", "fallen", "frosty", "gentle", "gilded", "green",
	"hidden", "hollow", "icy", "idle", "ivory", "late", "lively", "lone",
	"misty", "mossy", "muddy", "narrow", "nimble", "noble", "odd", "pale",
	"patient", "plain", "polished", "quiet", "rapid", "restless", "rough", "round",
	"rusty", "sandy", "scarlet", "shy", "silent", "silver", "sleepy", "slow",
	"small", "snowy", "solid", "sparse", "spring", "steady", "still", "stout",
	"summer", "sunny", "swift", "tall", "tidy", "twilight", "vast", "velvet",
	"wandering", "warm", "weathered", "wild", "winter", "wispy", "young", "zesty",
}

var nouns = []string{
	"acorn", "alder", "anvil", "arch", "aspen", "bay", "beacon", "birch",
	"bluff", "boulder", "brook", "canyon", "cedar", "cliff", "cloud", "comet",
	"coral", "cove", "creek", "dune", "ember", "fern", "field", "fjord",
	"flint", "forest", "garnet", "geyser", "glacier", "glade", "granite", "grove",
	"harbor", "hazel", "heath", "hill", "island", "jasper", "juniper", "lagoon",
	"lake", "larch", "lichen", "maple", "marsh", "meadow", "mesa", "moon",
	"moss", "oak", "oasis", "onyx", "orchard", "pebble", "pine", "plateau",
	"pond", "prairie", "quartz", "rain", "reef", "ridge", "river", "rowan",
	"sage", "shoal", "sky", "slate", "spruce", "star", "stone", "summit",
	"thicket", "thistle", "tide", "valley", "willow", "wind", "yarrow", "zenith",
}

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// generateHumanFriendlyID returns an ID like "misty_harbor_k3v9q2xa".
// The alphabet is lower case so IDs are safe file names on case
// insensitive filesystems.
func generateHumanFriendlyID() (string, error) {
	adjective := adjectives[rng.Intn(len(adjectives))]
	noun := nouns[rng.Intn(len(nouns))]

	suffix, err := gonanoid.Generate(idAlphabet, 8)
	if err != nil {
		return "", fmt.Errorf("failed to generate nanoid: %w", err)
	}

	return fmt.Sprintf("%s_%s_%s", adjective, noun, suffix), nil
}
