package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestParseJSON(t *testing.T) {
	got, err := ParseJSON[payload]("```json\n{\"name\": \"x\", \"count\": 2}\n```")
	assert.NoError(t, err)
	assert.Equal(t, payload{Name: "x", Count: 2}, got)

	got, err = ParseJSON[payload](`Here you go: {"name": "y", "count": 1} hope that helps`)
	assert.NoError(t, err)
	assert.Equal(t, payload{Name: "y", Count: 1}, got)

	_, err = ParseJSON[payload]("no json here")
	assert.Error(t, err)

	_, err = ParseJSON[payload]("{broken")
	assert.Error(t, err)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a\n\tb   c  "))
	assert.Equal(t, "", CleanText("   "))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", TruncateRunes("abc", 10))
	assert.Equal(t, "ab", TruncateRunes("abcd", 2))
	assert.Equal(t, "", TruncateRunes("abc", 0))
}
