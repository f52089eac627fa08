package content

import "fmt"

// Rand is the source of randomness used for shuffling decks and picking
// flavor text. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// pick returns a random element of texts, or "" when texts is empty.
func pick(texts []string, rng Rand) string {
	if len(texts) == 0 {
		return ""
	}
	return texts[rng.Intn(len(texts))]
}

// ContentObject holds the fields shared by obstacles and items.
type ContentObject struct {
	ID           string    `yaml:"id" json:"id"`
	Name         string    `yaml:"name" json:"name"`
	Tier         int       `yaml:"-" json:"tier,omitempty"` // assigned when the catalog is finalized
	Resources    Resources `yaml:"resources" json:"resources,omitempty"`
	Descriptions []string  `yaml:"descriptions" json:"descriptions,omitempty"`
	Flavor       []string  `yaml:"flavor" json:"flavor,omitempty"`
}

// RandomDescription returns one of the object's long descriptions.
func (c *ContentObject) RandomDescription(rng Rand) string {
	return pick(c.Descriptions, rng)
}

// RandomFlavor returns one of the object's flavor quotes.
func (c *ContentObject) RandomFlavor(rng Rand) string {
	return pick(c.Flavor, rng)
}

// FullLengthDescription renders the name, a random description and a random
// flavor line.
func (c *ContentObject) FullLengthDescription(rng Rand) string {
	return fmt.Sprintf("--%s--\n\n%s\n\n%s", c.Name, c.RandomDescription(rng), c.RandomFlavor(rng))
}
