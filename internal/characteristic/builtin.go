package characteristic

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
)

// Value is a built-in numeric characteristic read straight off the card.
type Value struct {
	name    string
	get     func(*card.Card) (float64, bool)
	labeler labeler
}

func (v *Value) Name() string { return v.name }

func (v *Value) Get(c *card.Card) (float64, bool) {
	if c == nil {
		return 0, false
	}
	return finite(v.get(c))
}

func (v *Value) Labels(cards []*card.Card) []string {
	return numericLabels(cards, v.Get, v.labeler)
}

func (v *Value) CardIsLabel(c *card.Card, label string) bool {
	return numericIsLabel(c, label, v.Get, v.labeler)
}

// Category groups cards by discrete labels. A card may carry several labels (tags) or none.
// Get reports no value; categories are grouping criteria only.
type Category struct {
	name     string
	order    []string // display order; labels outside it sort alphabetically after
	labelsOf func(*card.Card) []string
}

func (g *Category) Name() string { return g.name }

func (g *Category) Get(*card.Card) (float64, bool) { return 0, false }

func (g *Category) Labels(cards []*card.Card) []string {
	present := map[string]bool{}
	for _, c := range cards {
		for _, l := range g.labelsOf(c) {
			present[l] = true
		}
	}
	out := make([]string, 0, len(present))
	for _, l := range g.order {
		if present[l] {
			out = append(out, l)
			delete(present, l)
		}
	}
	var rest []string
	for l := range present {
		rest = append(rest, l)
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func (g *Category) CardIsLabel(c *card.Card, label string) bool {
	if c == nil {
		return false
	}
	for _, l := range g.labelsOf(c) {
		if l == label {
			return true
		}
	}
	return false
}

var colorOrder = []string{"White", "Blue", "Black", "Red", "Green", "Multicolored", "Colorless"}

var rarityOrder = []string{"Common", "Uncommon", "Rare", "Mythic", "Special"}

var priceEdges = []float64{0.25, 0.5, 1, 2, 5, 10, 20, 50, 100}

func pricePtr(p func(*card.Card) *float64) func(*card.Card) (float64, bool) {
	return func(c *card.Card) (float64, bool) {
		v := p(c)
		if v == nil {
			return 0, false
		}
		return *v, true
	}
}

func devotion(color string) *Value {
	return &Value{
		name:    "Devotion to " + card.ColorNames[color],
		get:     func(c *card.Card) (float64, bool) { return float64(c.Devotion(color)), true },
		labeler: exact{},
	}
}

// Builtins returns the characteristics that need nothing beyond the card itself,
// numeric ones first.
func Builtins() []Characteristic {
	out := []Characteristic{
		&Value{name: "Mana Value", get: func(c *card.Card) (float64, bool) { return c.ManaValue, true }, labeler: exact{}},
		&Value{name: "Power", get: (*card.Card).PowerValue, labeler: exact{}},
		&Value{name: "Toughness", get: (*card.Card).ToughnessValue, labeler: exact{}},
		&Value{name: "Elo", get: func(c *card.Card) (float64, bool) {
			if c.Elo == nil {
				return 0, false
			}
			return *c.Elo, true
		}, labeler: stepped{width: 50}},
		&Value{name: "Price", get: (*card.Card).Price, labeler: edges{bounds: priceEdges, prefix: "$"}},
		&Value{name: "Price USD", get: pricePtr(func(c *card.Card) *float64 { return c.Prices.USD }), labeler: edges{bounds: priceEdges, prefix: "$"}},
		&Value{name: "Price USD Foil", get: pricePtr(func(c *card.Card) *float64 { return c.Prices.USDFoil }), labeler: edges{bounds: priceEdges, prefix: "$"}},
		&Value{name: "Price EUR", get: pricePtr(func(c *card.Card) *float64 { return c.Prices.EUR }), labeler: edges{bounds: priceEdges, prefix: "€"}},
		&Value{name: "MTGO TIX", get: pricePtr(func(c *card.Card) *float64 { return c.Prices.TIX }), labeler: edges{bounds: priceEdges}},
		&Value{name: "Color Count", get: func(c *card.Card) (float64, bool) {
			return float64(card.ColorCount(c.ColorIdentity)), true
		}, labeler: exact{}},
	}
	for _, color := range card.AllColors {
		out = append(out, devotion(color))
	}
	out = append(out,
		&Category{name: "Color Identity", order: colorOrder, labelsOf: func(c *card.Card) []string {
			return []string{card.ColorCategory(c.ColorIdentity)}
		}},
		&Category{name: "Color", order: colorOrder, labelsOf: func(c *card.Card) []string {
			return []string{card.ColorCategory(c.Colors)}
		}},
		&Category{name: "Type", order: append(append([]string{}, card.TypeOrder...), "Other"), labelsOf: func(c *card.Card) []string {
			return []string{c.PrimaryType()}
		}},
		&Category{name: "Rarity", order: rarityOrder, labelsOf: func(c *card.Card) []string {
			if strings.TrimSpace(c.Rarity) == "" {
				return nil
			}
			return []string{cases.Title(language.Und).String(strings.TrimSpace(c.Rarity))}
		}},
		&Category{name: "Tags", labelsOf: func(c *card.Card) []string {
			var out []string
			for _, t := range c.Tags {
				if t = strings.TrimSpace(t); t != "" {
					out = append(out, t)
				}
			}
			return out
		}},
	)
	return out
}
