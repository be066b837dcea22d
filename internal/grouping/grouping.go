package grouping

import (
	"github.com/KaramelBytes/cubeloom-cli/internal/card"
	"github.com/KaramelBytes/cubeloom-cli/internal/characteristic"
	"github.com/KaramelBytes/cubeloom-cli/internal/errs"
)

// TotalLabel names the synthetic bucket holding every input card.
const TotalLabel = "Total"

// Bucket is one label and the cards that satisfy it, in input order.
type Bucket struct {
	Label string
	Cards []*card.Card
}

// GroupByCriterion returns one bucket per label of criterion.Labels(cards), in that order.
// A card lands in every bucket whose label it satisfies; cards matching no label are omitted.
func GroupByCriterion(cards []*card.Card, criterion characteristic.Characteristic) ([]Bucket, error) {
	if criterion == nil {
		return nil, errs.Config("criterion", "grouping criterion is required")
	}
	labels := criterion.Labels(cards)
	buckets := make([]Bucket, len(labels))
	for i, l := range labels {
		buckets[i].Label = l
		buckets[i].Cards = []*card.Card{}
	}
	for _, c := range cards {
		for i := range buckets {
			if criterion.CardIsLabel(c, buckets[i].Label) {
				buckets[i].Cards = append(buckets[i].Cards, c)
			}
		}
	}
	return buckets, nil
}

// GroupWithTotal is GroupByCriterion followed by a Total bucket holding the unfiltered input.
func GroupWithTotal(cards []*card.Card, criterion characteristic.Characteristic) ([]Bucket, error) {
	buckets, err := GroupByCriterion(cards, criterion)
	if err != nil {
		return nil, err
	}
	all := make([]*card.Card, len(cards))
	copy(all, cards)
	return append(buckets, Bucket{Label: TotalLabel, Cards: all}), nil
}

// Sortable keeps the cards that satisfy at least one label of every criterion.
func Sortable(cards []*card.Card, criteria ...characteristic.Characteristic) ([]*card.Card, error) {
	labels := make([][]string, len(criteria))
	for i, crit := range criteria {
		if crit == nil {
			return nil, errs.Config("criterion", "grouping criterion is required")
		}
		labels[i] = crit.Labels(cards)
	}
	out := make([]*card.Card, 0, len(cards))
	for _, c := range cards {
		if matchesAll(c, criteria, labels) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Filter keeps the cards the criterion places under label, preserving order.
func Filter(cards []*card.Card, criterion characteristic.Characteristic, label string) ([]*card.Card, error) {
	if criterion == nil {
		return nil, errs.Config("filter", "no characteristic selected")
	}
	out := make([]*card.Card, 0, len(cards))
	for _, c := range cards {
		if criterion.CardIsLabel(c, label) {
			out = append(out, c)
		}
	}
	return out, nil
}

func matchesAll(c *card.Card, criteria []characteristic.Characteristic, labels [][]string) bool {
	for i, crit := range criteria {
		hit := false
		for _, l := range labels[i] {
			if crit.CardIsLabel(c, l) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// WeightFunc gives the weight a card contributes to a count.
type WeightFunc func(*card.Card) float64

// One counts every card once.
func One(*card.Card) float64 { return 1 }

// Asfan weights a card by its expected copies per draft.
func Asfan(c *card.Card) float64 { return c.Asfan }

// WeightedSum sums weight over cards. A nil weight counts cards.
func WeightedSum(cards []*card.Card, weight WeightFunc) float64 {
	if weight == nil {
		weight = One
	}
	sum := 0.0
	for _, c := range cards {
		sum += weight(c)
	}
	return sum
}

// WeightedCounts sums weight over the cards of each bucket, keyed by label. Buckets sharing a
// label are merged; use WeightedSum per bucket when labels may repeat.
func WeightedCounts(buckets []Bucket, weight WeightFunc) map[string]float64 {
	out := make(map[string]float64, len(buckets))
	for _, b := range buckets {
		out[b.Label] += WeightedSum(b.Cards, weight)
	}
	return out
}
