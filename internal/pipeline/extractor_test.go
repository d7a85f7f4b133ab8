package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain JSON untouched",
			raw:  `{"transactions": []}`,
			want: `{"transactions": []}`,
		},
		{
			name: "json code fence",
			raw:  "```json\n{\"transactions\": []}\n```",
			want: `{"transactions": []}`,
		},
		{
			name: "bare code fence",
			raw:  "```\n{\"transactions\": []}\n```",
			want: `{"transactions": []}`,
		},
		{
			name: "surrounding prose",
			raw:  "Here you go:\n{\"transactions\": []}\nHope that helps!",
			want: `{"transactions": []}`,
		},
		{
			name: "leading and trailing whitespace",
			raw:  "  \n{\"transactions\": []}\n  ",
			want: `{"transactions": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanModelJSON(tt.raw))
		})
	}
}

func TestDecodeModelResponse(t *testing.T) {
	raw := `{"transactions": [["1/5/2024", "Grocery Store", "45"], ["1/6/2024", "ATM Fee", "3500"]]}`

	triples, err := decodeModelResponse(raw)

	require.NoError(t, err)
	require.Len(t, triples, 2)
	assert.Equal(t, []string{"1/5/2024", "Grocery Store", "45"}, triples[0])
	assert.Equal(t, []string{"1/6/2024", "ATM Fee", "3500"}, triples[1])
}

func TestDecodeModelResponse_EmptyList(t *testing.T) {
	triples, err := decodeModelResponse(`{"transactions": []}`)

	require.NoError(t, err)
	assert.Empty(t, triples)
}

func TestDecodeModelResponse_MissingKey(t *testing.T) {
	_, err := decodeModelResponse(`{"results": []}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transactions")
}

func TestDecodeModelResponse_InvalidJSON(t *testing.T) {
	_, err := decodeModelResponse(`not json at all`)
	require.Error(t, err)
}

func TestDecodeModelResponse_FencedPayload(t *testing.T) {
	raw := "```json\n{\"transactions\": [[\"1/5/2024\", \"Grocery Store\", \"45\"]]}\n```"

	triples, err := decodeModelResponse(raw)

	require.NoError(t, err)
	require.Len(t, triples, 1)
}

func TestBuildExtractionPrompt(t *testing.T) {
	prompt := buildExtractionPrompt(2026)

	assert.Contains(t, prompt, "MM/DD/YYYY")
	assert.Contains(t, prompt, "the current year, which is 2026")
	assert.True(t, strings.Contains(prompt, "exactly three strings"))
}
