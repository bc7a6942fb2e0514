package summary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tbl := []struct {
		name, in, want string
	}{
		{name: "empty", in: "", want: "No content available to summarize."},
		{name: "blank", in: "  \n\t", want: "No content available to summarize."},
		{name: "single sentence", in: "Just one sentence.", want: "Just one sentence."},
		{name: "two sentences", in: "First one. Second one.", want: "First one. Second one."},
		{name: "no period", in: "a headline without punctuation", want: "a headline without punctuation"},
		{
			name: "long text keeps first two and last",
			in:   "First. Second. Third. Fourth. Fifth",
			want: "First. Second. Fifth.",
		},
		{name: "trailing period", in: "First. Second. Third. Fourth.", want: "First. Second. Fourth."},
		{name: "three sentences with trailing period", in: "One. Two. Three.", want: "One. Two. Three."},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.in))
		})
	}
}

func TestExtractive_Summarize(t *testing.T) {
	res, err := Extractive{}.Summarize(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "No content available to summarize.", res)
}
