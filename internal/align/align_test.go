package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "two sentences",
			in:   "Hello world. Second one!",
			want: []string{"Hello world.", "Second one!"},
		},
		{
			name: "question and exclamation",
			in:   "Really? Yes! Done.",
			want: []string{"Really?", "Yes!", "Done."},
		},
		{
			name: "newline boundaries",
			in:   "first line\nsecond line",
			want: []string{"first line", "second line"},
		},
		{
			name: "cjk full stop",
			in:   "第一句。 第二句。",
			want: []string{"第一句。", "第二句。"},
		},
		{
			name: "no terminator falls back to whole text",
			in:   "  just a fragment  ",
			want: []string{"just a fragment"},
		},
		{
			name: "empty",
			in:   "   ",
			want: nil,
		},
		{
			name: "blank lines dropped",
			in:   "one.\n\n\ntwo.",
			want: []string{"one.", "two."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.in))
		})
	}
}

func TestPairPadsShorterSide(t *testing.T) {
	src, tgt := Pair("One. Two. Three.", "Uno.")
	assert.Equal(t, []string{"One.", "Two.", "Three."}, src)
	assert.Equal(t, []string{"Uno.", "", ""}, tgt)
}

func TestPairEqualLengthInvariant(t *testing.T) {
	cases := [][2]string{
		{"", ""},
		{"A.", ""},
		{"", "B. C."},
		{"A. B.", "X. Y. Z."},
		{"no terminator", "aussi sans terminateur"},
	}
	for _, c := range cases {
		src, tgt := Pair(c[0], c[1])
		assert.Len(t, tgt, len(src))
	}
}
