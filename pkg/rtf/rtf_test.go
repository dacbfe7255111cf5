package rtf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToTextPlainTextRepairs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "passes plain text through",
			input: "Game 2.1 - 501 SIDO\nAlice\t60\t441",
			want:  "Game 2.1 - 501 SIDO\nAlice\t60\t441",
		},
		{
			name:  "rejoins a wrapped game number",
			input: "Game 2 . 1 - 501 SIDO",
			want:  "Game 2.1 - 501 SIDO",
		},
		{
			name:  "rejoins a wrapped duration",
			input: "Duration 00 : 22",
			want:  "Duration 00:22",
		},
		{
			name:  "collapses space runs but keeps tabs",
			input: "Alice   Smith\t60\t441",
			want:  "Alice Smith\t60\t441",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  \n Game 1.1 - Cricket \n ",
			want:  "Game 1.1 - Cricket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToText(tt.input))
		})
	}
}

func TestToTextRTFBody(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips the shell and keeps body text",
			input: `{\rtf1\ansi\deff0 Hello World}`,
			want:  "Hello World",
		},
		{
			name:  "par and tab become newline and tab",
			input: `{\rtf1 Alice\tab 60\tab 441\par Bob\tab 58}`,
			want:  "Alice\t60\t441\nBob\t58",
		},
		{
			name:  "font and color tables are dropped whole",
			input: `{\rtf1{\fonttbl{\f0 Calibri;}}{\colortbl ;\red0\green0\blue0;}Game 2.1 - 501}`,
			want:  "Game 2.1 - 501",
		},
		{
			name:  "ignorable destinations are dropped",
			input: `{\rtf1{\*\generator Riched20}report body}`,
			want:  "report body",
		},
		{
			name:  "unicode escape yields the no-throw mark",
			input: `{\rtf1 Alice\tab\u8709?\tab 441}`,
			want:  "Alice\t∅\t441",
		},
		{
			name:  "hex escape yields an apostrophe",
			input: `{\rtf1 O\'27Brien}`,
			want:  "O'Brien",
		},
		{
			name:  "escaped braces survive as text",
			input: `{\rtf1 score \{best\} run}`,
			want:  `score {best} run`,
		},
		{
			name:  "raw file line breaks are not content",
			input: "{\\rtf1 Alice\\tab 60\r\n\\tab 441}",
			want:  "Alice\t60\t441",
		},
		{
			name:  "formatting control words vanish",
			input: `{\rtf1\pard\fs22\lang9 Alice\par\pard Bob}`,
			want:  "Alice\nBob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToText(tt.input))
		})
	}
}

func TestToTextWrappedMarkerInsideRTF(t *testing.T) {
	// Line wrapping can split tokens inside the RTF body too; both repairs
	// must run after the scan.
	input := `{\rtf1 Game 2 . 1 - 501 SIDO\par Alice\tab 60}`
	assert.Equal(t, "Game 2.1 - 501 SIDO\nAlice\t60", ToText(input))
}

func TestToTextNeverPanicsOnMalformedInput(t *testing.T) {
	inputs := []string{
		`{\rtf1 unterminated`,
		`{\rtf1{\fonttbl never closed`,
		`{\rtf1 \`,
		`{\rtf1 \u}`,
		`{\rtf1 \'z9}`,
		"",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { ToText(in) })
	}
}
