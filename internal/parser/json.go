package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
)

type jsonLoader struct{}

func (jsonLoader) CanParse(filename string) bool { return hasExt(filename, ".json") }

// number accepts JSON numbers and numeric strings; null and "" leave it unset.
type number struct {
	v   float64
	set bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		if v, ok := parseNumber(str); ok {
			n.v, n.set = v, true
		}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", s)
	}
	n.v, n.set = v, true
	return nil
}

func (n number) ptr() *float64 {
	if !n.set {
		return nil
	}
	v := n.v
	return &v
}

// text accepts JSON strings and numbers, so power "2" and power 2 both parse.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		return nil
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*t = text(str)
	default:
		*t = text(s)
	}
	return nil
}

type jsonPrices struct {
	USD     number `json:"usd"`
	USDFoil number `json:"usd_foil"`
	EUR     number `json:"eur"`
	TIX     number `json:"tix"`
}

// jsonFields are the card fields shared by the flat layout and CubeCobra's "details" object.
type jsonFields struct {
	Name          string     `json:"name"`
	CMC           number     `json:"cmc"`
	TypeLine      string     `json:"type_line"`
	Type          string     `json:"type"`
	ManaCost      string     `json:"mana_cost"`
	ParsedCost    []string   `json:"parsed_cost"`
	Colors        []string   `json:"colors"`
	ColorIdentity []string   `json:"color_identity"`
	Power         text       `json:"power"`
	Toughness     text       `json:"toughness"`
	Rarity        string     `json:"rarity"`
	Set           string     `json:"set"`
	Prices        jsonPrices `json:"prices"`
	Elo           number     `json:"elo"`
}

type jsonCard struct {
	jsonFields
	ID      string      `json:"cardID"`
	AltID   string      `json:"id"`
	Tags    []string    `json:"tags"`
	Finish  string      `json:"finish"`
	Status  string      `json:"status"`
	Details *jsonFields `json:"details"`
}

func (jsonLoader) Parse(content []byte) ([]*card.Card, error) {
	content = bytes.TrimSpace(content)
	var list []jsonCard
	if bytes.HasPrefix(content, []byte("[")) {
		if err := json.Unmarshal(content, &list); err != nil {
			return nil, fmt.Errorf("decode cards: %w", err)
		}
	} else {
		var wrapped struct {
			Cards []jsonCard `json:"cards"`
		}
		if err := json.Unmarshal(content, &wrapped); err != nil {
			return nil, fmt.Errorf("decode cube: %w", err)
		}
		list = wrapped.Cards
	}
	out := make([]*card.Card, 0, len(list))
	for i := range list {
		out = append(out, list[i].card())
	}
	return out, nil
}

// card merges the top-level fields over the details object.
func (j *jsonCard) card() *card.Card {
	f := j.jsonFields
	if d := j.Details; d != nil {
		f = mergeFields(f, *d)
	}
	c := &card.Card{
		ID:            firstNonEmpty(j.ID, j.AltID),
		Name:          f.Name,
		ManaValue:     f.CMC.v,
		TypeLine:      firstNonEmpty(f.TypeLine, f.Type),
		ManaCost:      f.ManaCost,
		Colors:        upper(f.Colors),
		ColorIdentity: upper(f.ColorIdentity),
		Power:         string(f.Power),
		Toughness:     string(f.Toughness),
		Rarity:        f.Rarity,
		Set:           f.Set,
		Prices: card.Prices{
			USD:     f.Prices.USD.ptr(),
			USDFoil: f.Prices.USDFoil.ptr(),
			EUR:     f.Prices.EUR.ptr(),
			TIX:     f.Prices.TIX.ptr(),
		},
		Elo:    f.Elo.ptr(),
		Tags:   j.Tags,
		Finish: j.Finish,
		Status: j.Status,
	}
	if c.ManaCost == "" && len(f.ParsedCost) > 0 {
		c.ManaCost = costFromParsed(f.ParsedCost)
	}
	if c.ColorIdentity == nil {
		c.ColorIdentity = c.Colors
	}
	return c
}

func mergeFields(top, d jsonFields) jsonFields {
	if top.Name == "" {
		top.Name = d.Name
	}
	if !top.CMC.set {
		top.CMC = d.CMC
	}
	if top.TypeLine == "" && top.Type == "" {
		top.TypeLine, top.Type = d.TypeLine, d.Type
	}
	if top.ManaCost == "" {
		top.ManaCost = d.ManaCost
	}
	if top.ParsedCost == nil {
		top.ParsedCost = d.ParsedCost
	}
	if top.Colors == nil {
		top.Colors = d.Colors
	}
	if top.ColorIdentity == nil {
		top.ColorIdentity = d.ColorIdentity
	}
	if top.Power == "" {
		top.Power = d.Power
	}
	if top.Toughness == "" {
		top.Toughness = d.Toughness
	}
	if top.Rarity == "" {
		top.Rarity = d.Rarity
	}
	if top.Set == "" {
		top.Set = d.Set
	}
	if !top.Prices.USD.set && !top.Prices.USDFoil.set && !top.Prices.EUR.set && !top.Prices.TIX.set {
		top.Prices = d.Prices
	}
	if !top.Elo.set {
		top.Elo = d.Elo
	}
	return top
}

// costFromParsed rebuilds a "{2}{W}" style cost from CubeCobra's parsed symbols ("w-u" is hybrid).
func costFromParsed(parsed []string) string {
	var b strings.Builder
	for _, sym := range parsed {
		b.WriteString("{" + strings.ReplaceAll(strings.ToUpper(sym), "-", "/") + "}")
	}
	return b.String()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func upper(vals []string) []string {
	if vals == nil {
		return nil
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.ToUpper(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
