package content_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
	"github.com/Codelizard/HeroesOfCordan/pkg/content/contenttest"
)

func TestNewCatalogFinalizesTiers(t *testing.T) {
	c := contenttest.Catalog()

	require.Equal(t, 2, c.TierCount())
	tier, err := c.Tier(2)
	require.NoError(t, err)

	assert.Equal(t, 2, tier.Number)
	assert.Equal(t, 2, tier.Events[0].Tier)
	assert.Equal(t, content.KindEvent, tier.Events[0].Kind)
	assert.Equal(t, content.KindMonster, tier.Monsters[0].Kind)
	assert.Equal(t, content.KindMonster, tier.Boss.Kind)
	assert.Equal(t, content.KindEquipment, tier.Equipment[0].Kind)
	assert.Equal(t, content.KindConsumable, tier.Consumables[0].Kind)
	assert.Equal(t, 2, tier.Consumables[0].Tier)
}

func TestCatalogTierNotFound(t *testing.T) {
	c := contenttest.Catalog()

	_, err := c.Tier(3)
	assert.True(t, errors.Is(err, content.ErrTierNotFound))
}

func TestCatalogMessages(t *testing.T) {
	c := contenttest.Catalog()
	rng := contenttest.Rand(1)

	assert.Equal(t, "OK", c.Message("global.confirm"))
	assert.Equal(t, "no.such.key", c.Message("no.such.key"))
	assert.Equal(t, "Once more.", c.RandomMessage("restart", rng))
	assert.Equal(t, "You take a short break to recover your strength.", c.RandomMessage("short_rest", rng))
	assert.Equal(t, "mystery", c.RandomMessage("mystery", rng))

	assert.Equal(t, []string{"victory.thanks"}, c.MissingMessages([]string{"global.yes", "victory.thanks"}))
	assert.Equal(t, []string{"short_rest"}, c.MissingCategories([]string{"restart", "short_rest"}))
}

func TestPickFourRandomHeroes(t *testing.T) {
	c := contenttest.Catalog()

	heroes := c.PickFourRandomHeroes(contenttest.Rand(7))

	require.Len(t, heroes, content.PartySize)
	seen := make(map[string]bool)
	for _, h := range heroes {
		assert.False(t, seen[h.ID], "hero %s picked twice", h.ID)
		seen[h.ID] = true
	}
	// the catalog's own order is untouched
	assert.Equal(t, "knight", c.Heroes()[0].ID)
}

func TestHeroText(t *testing.T) {
	h := contenttest.Catalog().Heroes()[0]

	assert.Equal(t, "Physical: 3 | Divine: 1", h.InitialResourcesText())
	assert.Equal(t, "Sir knight the Knight", h.Title())
	assert.Equal(t, 4, h.LevelResources(2)[content.Physical])
	assert.Equal(t, 4, h.LevelResources(5)[content.Physical])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *content.CatalogFile)
		want   string
	}{
		{
			name:   "too few heroes",
			mutate: func(f *content.CatalogFile) { f.Heroes = f.Heroes[:3] },
			want:   "at least 4 heroes",
		},
		{
			name:   "duplicate hero",
			mutate: func(f *content.CatalogFile) { f.Heroes[1].ID = f.Heroes[0].ID },
			want:   `duplicate hero id "knight"`,
		},
		{
			name:   "bad hero id",
			mutate: func(f *content.CatalogFile) { f.Heroes[0].ID = "Big-Knight" },
			want:   "lowercase snake_case",
		},
		{
			name:   "unknown discount",
			mutate: func(f *content.CatalogFile) { f.Heroes[0].Discount.Type = "TRAPS" },
			want:   "unknown discount type",
		},
		{
			name:   "unknown loot",
			mutate: func(f *content.CatalogFile) { f.Tiers[0].Monsters[0].Loot = "GOLD" },
			want:   `unknown loot type "GOLD"`,
		},
		{
			name:   "missing boss",
			mutate: func(f *content.CatalogFile) { f.Tiers[0].Boss = nil },
			want:   "tier 1 has no boss",
		},
		{
			name:   "level up on last tier",
			mutate: func(f *content.CatalogFile) { f.Tiers = f.Tiers[:1] },
			want:   "awards LEVELUP on the last tier",
		},
		{
			name:   "empty pool",
			mutate: func(f *content.CatalogFile) { f.Tiers[1].Consumables = nil },
			want:   "tier 2 has no consumables",
		},
		{
			name: "obstacle without cost",
			mutate: func(f *content.CatalogFile) {
				f.Tiers[0].Events[0].Resources = content.Resources{}
			},
			want: "has no resource costs",
		},
		{
			name: "unknown resource",
			mutate: func(f *content.CatalogFile) {
				f.Tiers[0].Equipment[0].Resources["LUCK"] = content.ResourceValue{Value: 1}
			},
			want: `unknown resource "LUCK"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := contenttest.File()
			tt.mutate(f)

			_, err := content.NewCatalog(f)

			require.Error(t, err)
			assert.ErrorIs(t, err, content.ErrInvalidCatalog)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
