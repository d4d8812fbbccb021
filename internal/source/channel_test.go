package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageFilterRelevant(t *testing.T) {
	f := NewMessageFilter()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "news post passes",
			text: "Минфин сообщил о пересмотре бюджета на следующий год, сообщает пресс-служба ведомства",
			want: true,
		},
		{
			name: "too short",
			text: "сообщает ТАСС",
			want: false,
		},
		{
			name: "too long",
			text: strings.Repeat("заявил ", 200),
			want: false,
		},
		{
			name: "no reporting keyword",
			text: strings.Repeat("просто длинный текст без новостных маркеров ", 3),
			want: false,
		},
		{
			name: "empty",
			text: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Relevant(tt.text))
		})
	}
}

func TestFirstLink(t *testing.T) {
	assert.Equal(t, "https://example.com/a", firstLink("читайте https://example.com/a и https://example.com/b"))
	assert.Equal(t, "", firstLink("ссылок нет"))
}

func TestHeadline(t *testing.T) {
	short := "короткий пост"
	assert.Equal(t, short, headline(short))

	long := strings.Repeat("я", 150)
	got := headline(long)
	assert.Len(t, []rune(got), channelTitleLen+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestRegistryDeterministicOrder(t *testing.T) {
	r := Default(ModeRSS, 0)

	first := r.Categories()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, r.Categories())
	}
	assert.NotEmpty(t, r.SourcesFor(first[0]))
}
