package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
)

// headerAliases maps lower-cased column headers to card fields. The CubeCobra export header
// is covered along with common variants.
var headerAliases = map[string]string{
	"name":            "name",
	"card":            "name",
	"card name":       "name",
	"cmc":             "cmc",
	"mana value":      "cmc",
	"mv":              "cmc",
	"type":            "type",
	"type line":       "type",
	"type_line":       "type",
	"color":           "color",
	"colors":          "color",
	"color identity":  "identity",
	"color_identity":  "identity",
	"set":             "set",
	"rarity":          "rarity",
	"status":          "status",
	"finish":          "finish",
	"maybeboard":      "maybeboard",
	"tags":            "tags",
	"mana cost":       "cost",
	"mana_cost":       "cost",
	"power":           "power",
	"toughness":       "toughness",
	"price":           "usd",
	"price usd":       "usd",
	"price usd foil":  "usd_foil",
	"price eur":       "eur",
	"mtgo tix":        "tix",
	"elo":             "elo",
	"id":              "id",
	"card id":         "id",
	"cardid":          "id",
	"asfan":           "asfan",
}

// cardsFromRows maps a header row plus data rows to cards. Maybeboard rows are skipped.
func cardsFromRows(rows [][]string) ([]*card.Card, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if field, ok := headerAliases[key]; ok && field != "" {
			if _, dup := cols[field]; !dup {
				cols[field] = i
			}
		}
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("header has no Name column")
	}
	get := func(row []string, field string) string {
		i, ok := cols[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	num := func(row []string, field string) *float64 {
		v, ok := parseNumber(get(row, field))
		if !ok {
			return nil
		}
		return &v
	}

	out := make([]*card.Card, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if strings.EqualFold(get(row, "maybeboard"), "true") {
			continue
		}
		c := &card.Card{
			ID:        get(row, "id"),
			Name:      get(row, "name"),
			TypeLine:  get(row, "type"),
			ManaCost:  get(row, "cost"),
			Set:       get(row, "set"),
			Rarity:    get(row, "rarity"),
			Status:    get(row, "status"),
			Finish:    get(row, "finish"),
			Power:     get(row, "power"),
			Toughness: get(row, "toughness"),
			Colors:    colorLetters(get(row, "color")),
			Tags:      splitTags(get(row, "tags")),
			Prices: card.Prices{
				USD:     num(row, "usd"),
				USDFoil: num(row, "usd_foil"),
				EUR:     num(row, "eur"),
				TIX:     num(row, "tix"),
			},
			Elo: num(row, "elo"),
		}
		if v := num(row, "cmc"); v != nil {
			c.ManaValue = *v
		}
		if v := num(row, "asfan"); v != nil {
			c.Asfan = *v
		}
		if _, ok := cols["identity"]; ok {
			c.ColorIdentity = colorLetters(get(row, "identity"))
		} else {
			c.ColorIdentity = c.Colors
		}
		out = append(out, c)
	}
	return out, nil
}

// colorLetters reads "WU", "W, U", "w;u" or "White Blue" into WUBRG letters.
func colorLetters(s string) []string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "C" || s == "COLORLESS" {
		return []string{}
	}
	seen := map[string]bool{}
	var out []string
	add := func(l string) {
		if _, ok := card.ColorNames[l]; ok && !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	for _, word := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == ' ' || r == '/' }) {
		matched := false
		for letter, name := range card.ColorNames {
			if word == strings.ToUpper(name) {
				add(letter)
				matched = true
			}
		}
		if !matched {
			for _, r := range word {
				add(string(r))
			}
		}
	}
	if out == nil {
		return []string{}
	}
	return out
}

// splitTags splits CubeCobra's ";" separated tag list, falling back to ",".
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	sep := ";"
	if !strings.Contains(s, ";") {
		sep = ","
	}
	var out []string
	for _, t := range strings.Split(s, sep) {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseNumber reads plain numbers plus price-like cells such as "$1.25", "€0,80" or "1,000.50".
func parseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimLeft(raw, "$€£")
	raw = strings.ReplaceAll(raw, " ", "")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	switch {
	case cpos >= 0 && dpos >= 0 && cpos > dpos:
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	case cpos >= 0 && dpos >= 0:
		raw = strings.ReplaceAll(raw, ",", "")
	case cpos >= 0:
		raw = strings.Replace(raw, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
