// Package classify assigns a category to a news item by keyword lookup.
//
// Rules are checked in slice order and the first category with any keyword
// present as a substring wins, so the order is an explicit priority between
// overlapping keyword sets, not an accident of map iteration.
package classify

import (
	"strings"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

type Rule struct {
	Category model.Category
	Keywords []string
}

type Classifier struct {
	rules    []Rule
	fallback model.Category
}

// New builds a classifier over an ordered rule list. fallback is returned
// when no keyword matches.
func New(rules []Rule, fallback model.Category) *Classifier {
	return &Classifier{rules: rules, fallback: fallback}
}

// Classify lower-cases title+description and returns the first rule whose
// keyword list has a substring match, or the fallback.
func (c *Classifier) Classify(title, description string) model.Category {
	text := strings.ToLower(title + " " + description)

	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category
			}
		}
	}

	return c.fallback
}

// DefaultRules is the keyword table used by both source modes. Russian
// keywords carry the bulk of the traffic, English ones cover international
// feeds.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: model.CategoryPolitics,
			Keywords: []string{
				"политика", "президент", "правительство", "депутат",
				"парламент", "выборы", "митинг", "протест", "власть",
				"закон", "указ", "election", "government", "policy",
			},
		},
		{
			Category: model.CategoryEconomy,
			Keywords: []string{
				"экономика", "биржа", "валюта", "рубль", "доллар",
				"нефть", "газ", "банк", "кредит", "инфляция",
				"инвестиции", "economy", "market", "investment",
			},
		},
		{
			Category: model.CategorySports,
			Keywords: []string{
				"спорт", "футбол", "хоккей", "баскетбол", "теннис",
				"олимпиада", "чемпионат", "матч", "игрок",
				"sport", "football", "olympics",
			},
		},
		{
			Category: model.CategoryTechnology,
			Keywords: []string{
				"технологии", "искусственный интеллект", "робот",
				"программа", "приложение", "гаджет", "смартфон",
				"интернет", "technology", "software", "digital",
			},
		},
	}
}
