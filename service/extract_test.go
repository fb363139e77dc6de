package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCustomerName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "kunden with connector",
			text: "kunden Acme Corp i monday",
			want: "Acme Corp",
		},
		{
			name: "kunden stops at og",
			text: "kunden Acme og giv mig status",
			want: "Acme",
		},
		{
			name: "kunde without trailing n",
			text: "kunde TechNova i monday",
			want: "TechNova",
		},
		{
			name: "kunden without connector",
			text: "kunden Nordik?",
			want: "Nordik",
		},
		{
			name: "find with capitalized name",
			text: "find TechNova og giv status",
			want: "TechNova",
		},
		{
			name: "find is case insensitive",
			text: "find acme i monday",
			want: "acme",
		},
		{
			name: "capitalized words before connector",
			text: "status på Acme i monday",
			want: "Acme",
		},
		{
			name: "no capitalized word before connector takes last token",
			text: "snak med vores kontakt i monday",
			want: "kontakt",
		},
		{
			name: "leading bullet is stripped",
			text: "- kunden Acme Corp i monday",
			want: "Acme Corp",
		},
		{
			name: "standalone capitalized word",
			text: "hvordan går det med Zenitech",
			want: "Zenitech",
		},
		{
			name: "trailing punctuation is stripped",
			text: "find TechNova og send en mail!",
			want: "TechNova",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCustomerName(tt.text))
		})
	}
}

func TestExtractCustomerNameBestGuess(t *testing.T) {
	// No recognizable pattern and no capitalized word: the extractor must
	// still produce a usable token, never crash and never leak the markers
	// it is supposed to strip.
	inputs := []string{
		"hvad er status",
		"- hvad sker der?",
		"ok",
		"",
		"-–—",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := ExtractCustomerName(input)
			assert.False(t, strings.HasPrefix(got, "-"))
			assert.False(t, strings.HasSuffix(got, "?"))
			if strings.TrimSpace(strings.Trim(input, "-–— ?!.:,;")) != "" {
				assert.NotEmpty(t, got)
			}
		})
	}
}
