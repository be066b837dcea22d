package card

import "strings"

// Analytic is the draft history of one card in a cube.
type Analytic struct {
	CardName   string  `json:"cardName"`
	Elo        float64 `json:"elo"`
	Picks      int     `json:"picks"`
	Passes     int     `json:"passes"`
	Mainboards int     `json:"mainboards"`
	Sideboards int     `json:"sideboards"`
}

// PickRate is picks / (picks + passes). False when the card was never seen.
func (a *Analytic) PickRate() (float64, bool) {
	if a == nil || a.Picks+a.Passes == 0 {
		return 0, false
	}
	return float64(a.Picks) / float64(a.Picks+a.Passes), true
}

// MainboardRate is mainboards / (mainboards + sideboards). False when the card was never decked.
func (a *Analytic) MainboardRate() (float64, bool) {
	if a == nil || a.Mainboards+a.Sideboards == 0 {
		return 0, false
	}
	return float64(a.Mainboards) / float64(a.Mainboards+a.Sideboards), true
}

// AnalyticsIndex looks up draft analytics by card name, case-insensitively.
type AnalyticsIndex map[string]*Analytic

// NewAnalyticsIndex builds an index from a list of analytics. Later entries win.
func NewAnalyticsIndex(list []*Analytic) AnalyticsIndex {
	idx := make(AnalyticsIndex, len(list))
	for _, a := range list {
		if a == nil {
			continue
		}
		idx[strings.ToLower(strings.TrimSpace(a.CardName))] = a
	}
	return idx
}

// Lookup returns the analytic for the card, if any.
func (idx AnalyticsIndex) Lookup(c *Card) (*Analytic, bool) {
	if idx == nil || c == nil {
		return nil, false
	}
	a, ok := idx[strings.ToLower(strings.TrimSpace(c.Name))]
	return a, ok
}

// AttachAsfans sets Card.Asfan from a map keyed by card id or, failing that, by lower-cased name.
// It returns the number of cards that received a value.
func AttachAsfans(cards []*Card, asfans map[string]float64) int {
	if len(asfans) == 0 {
		return 0
	}
	byName := make(map[string]float64, len(asfans))
	for k, v := range asfans {
		byName[strings.ToLower(strings.TrimSpace(k))] = v
	}
	n := 0
	for _, c := range cards {
		if v, ok := asfans[c.ID]; ok && c.ID != "" {
			c.Asfan = v
			n++
			continue
		}
		if v, ok := byName[strings.ToLower(strings.TrimSpace(c.Name))]; ok {
			c.Asfan = v
			n++
		}
	}
	return n
}
