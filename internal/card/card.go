package card

import (
	"strconv"
	"strings"
)

// Color letters in WUBRG order.
const (
	White = "W"
	Blue  = "U"
	Black = "B"
	Red   = "R"
	Green = "G"
)

// AllColors lists the five colors in WUBRG order.
var AllColors = []string{White, Blue, Black, Red, Green}

// ColorNames maps a color letter to its display name.
var ColorNames = map[string]string{
	White: "White",
	Blue:  "Blue",
	Black: "Black",
	Red:   "Red",
	Green: "Green",
}

// Prices holds the market prices known for a card printing. Nil means unknown.
type Prices struct {
	USD     *float64 `json:"usd,omitempty"`
	USDFoil *float64 `json:"usd_foil,omitempty"`
	EUR     *float64 `json:"eur,omitempty"`
	TIX     *float64 `json:"tix,omitempty"`
}

// Card is a single entry of a cube list.
type Card struct {
	ID            string   `json:"cardID"`
	Name          string   `json:"name"`
	ManaValue     float64  `json:"cmc"`
	ManaCost      string   `json:"mana_cost,omitempty"`
	TypeLine      string   `json:"type_line"`
	Colors        []string `json:"colors"`
	ColorIdentity []string `json:"color_identity"`
	Power         string   `json:"power,omitempty"`
	Toughness     string   `json:"toughness,omitempty"`
	Rarity        string   `json:"rarity,omitempty"`
	Set           string   `json:"set,omitempty"`
	Prices        Prices   `json:"prices"`
	Elo           *float64 `json:"elo,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Finish        string   `json:"finish,omitempty"`
	Status        string   `json:"status,omitempty"`

	// Asfan is the expected number of copies seen per draft. Zero means unknown.
	Asfan float64 `json:"asfan,omitempty"`
}

// Price returns the best known price: USD, then USD foil, then EUR, then MTGO tix.
func (c *Card) Price() (float64, bool) {
	for _, p := range []*float64{c.Prices.USD, c.Prices.USDFoil, c.Prices.EUR, c.Prices.TIX} {
		if p != nil {
			return *p, true
		}
	}
	return 0, false
}

// IsLand reports whether the type line contains Land.
func (c *Card) IsLand() bool {
	return strings.Contains(strings.ToLower(c.TypeLine), "land")
}

// IsCreature reports whether the type line contains Creature.
func (c *Card) IsCreature() bool {
	return strings.Contains(strings.ToLower(c.TypeLine), "creature")
}

// TypeOrder is the priority used to pick a card's primary type.
var TypeOrder = []string{
	"Creature", "Planeswalker", "Battle", "Instant", "Sorcery", "Land", "Artifact", "Enchantment",
}

// PrimaryType returns the first entry of TypeOrder present in the type line, or "Other".
func (c *Card) PrimaryType() string {
	// only the supertypes and card types before the dash count
	line := strings.ToLower(c.TypeLine)
	if i := strings.IndexAny(line, "—-"); i >= 0 {
		line = line[:i]
	}
	for _, t := range TypeOrder {
		if strings.Contains(line, strings.ToLower(t)) {
			return t
		}
	}
	return "Other"
}

// Devotion counts mana symbols in the mana cost that include the given color letter.
// Hybrid and phyrexian symbols count once per matching color.
func (c *Card) Devotion(color string) int {
	color = strings.ToUpper(color)
	n := 0
	for _, sym := range ManaSymbols(c.ManaCost) {
		for _, part := range strings.Split(strings.ToUpper(sym), "/") {
			if part == color {
				n++
				break
			}
		}
	}
	return n
}

// ManaSymbols splits "{2}{W}{U/P}" into ["2", "W", "U/P"].
func ManaSymbols(cost string) []string {
	var out []string
	for {
		open := strings.IndexByte(cost, '{')
		if open < 0 {
			return out
		}
		end := strings.IndexByte(cost[open:], '}')
		if end < 0 {
			return out
		}
		out = append(out, cost[open+1:open+end])
		cost = cost[open+end+1:]
	}
}

// PowerValue parses the leading integer of Power ("1+*" -> 1). Returns false for "*" or "".
func (c *Card) PowerValue() (float64, bool) { return leadingInt(c.Power) }

// ToughnessValue parses the leading integer of Toughness.
func (c *Card) ToughnessValue() (float64, bool) { return leadingInt(c.Toughness) }

func leadingInt(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return float64(n), true
}

// ColorCategory names the color group of a set of color letters:
// a single color name, "Multicolored", or "Colorless".
func ColorCategory(colors []string) string {
	seen := map[string]bool{}
	for _, c := range colors {
		c = strings.ToUpper(strings.TrimSpace(c))
		if _, ok := ColorNames[c]; ok {
			seen[c] = true
		}
	}
	switch len(seen) {
	case 0:
		return "Colorless"
	case 1:
		for c := range seen {
			return ColorNames[c]
		}
	}
	return "Multicolored"
}

// ColorCount returns the number of distinct WUBRG colors in colors.
func ColorCount(colors []string) int {
	seen := map[string]bool{}
	for _, c := range colors {
		c = strings.ToUpper(strings.TrimSpace(c))
		if _, ok := ColorNames[c]; ok {
			seen[c] = true
		}
	}
	return len(seen)
}
