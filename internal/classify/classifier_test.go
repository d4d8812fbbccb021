package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

func TestClassify(t *testing.T) {
	c := New(DefaultRules(), model.CategoryWorld)

	tests := []struct {
		name        string
		title       string
		description string
		want        model.Category
	}{
		{
			name:  "politics by keyword",
			title: "Президент подписал указ",
			want:  model.CategoryPolitics,
		},
		{
			name:        "economy from description",
			title:       "Утренний обзор",
			description: "Рубль укрепился к доллару на открытии биржи",
			want:        model.CategoryEconomy,
		},
		{
			name:  "sports english",
			title: "Champions League football results",
			want:  model.CategorySports,
		},
		{
			name:  "technology",
			title: "Новый смартфон представили на выставке",
			want:  model.CategoryTechnology,
		},
		{
			name:  "case insensitive",
			title: "ФУТБОЛ: итоги тура",
			want:  model.CategorySports,
		},
		{
			name:  "no match falls back",
			title: "Погода на выходные",
			want:  model.CategoryWorld,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.title, tt.description))
		})
	}
}

func TestClassifyFallbackDeterministic(t *testing.T) {
	c := New(DefaultRules(), model.CategoryMisc)

	for i := 0; i < 10; i++ {
		assert.Equal(t, model.CategoryMisc, c.Classify("ничего общего", ""))
	}
}

func TestClassifyRuleOrderIsPriority(t *testing.T) {
	// "выборы" (politics) and "банк" (economy) both match; the politics
	// rule is listed first so it must win.
	c := New(DefaultRules(), model.CategoryWorld)
	got := c.Classify("Банк прокомментировал итоги выборов", "")
	assert.Equal(t, model.CategoryPolitics, got)

	// Reversed rule order flips the answer.
	rules := DefaultRules()
	reversed := []Rule{rules[1], rules[0], rules[2], rules[3]}
	c = New(reversed, model.CategoryWorld)
	got = c.Classify("Банк прокомментировал итоги выборов", "")
	assert.Equal(t, model.CategoryEconomy, got)
}
