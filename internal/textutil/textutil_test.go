package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{
			name:   "strips tags",
			in:     `<p>Курс рубля <b>вырос</b></p>`,
			maxLen: 200,
			want:   "Курс рубля вырос",
		},
		{
			name:   "collapses whitespace",
			in:     "one\n\t two   three",
			maxLen: 200,
			want:   "one two three",
		},
		{
			name:   "empty input",
			in:     "",
			maxLen: 200,
			want:   "",
		},
		{
			name:   "short text untouched",
			in:     "short",
			maxLen: 10,
			want:   "short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in, tt.maxLen))
		})
	}
}

func TestCleanTruncatesOnWordBoundary(t *testing.T) {
	in := strings.Repeat("слово ", 60)

	got := Clean(in, 50)

	assert.True(t, strings.HasSuffix(got, Ellipsis))
	assert.LessOrEqual(t, len([]rune(got)), 50+len(Ellipsis))
	// Never cut mid-word: dropping the marker must leave whole words only.
	trimmed := strings.TrimSuffix(got, Ellipsis)
	for _, w := range strings.Fields(trimmed) {
		assert.Equal(t, "слово", w)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want model.Language
	}{
		{"Новости дня", model.LanguageRU},
		{"Breaking news", model.LanguageEN},
		{"аб cd", model.LanguageMixed},
		{"12345 !!!", model.LanguageUnknown},
		{"", model.LanguageUnknown},
		{"Минфин предложил new policy framework изменения", model.LanguageRU},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLanguage(tt.in), "input: %q", tt.in)
	}
}

func TestDetectLanguageDeterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.Equal(t, model.LanguageMixed, DetectLanguage("ab аб"))
	}
}
