package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeaxis/timeaxis/internal/models"
)

func TestUnwrapCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"summary":"x"}`, `{"summary":"x"}`},
		{"fenced", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced with tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n[1,2]\n```  ", "[1,2]"},
		{"fence chars inside", "{\"s\":\"uses ``` inside\"}", "{\"s\":\"uses ``` inside\"}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, UnwrapCodeFence(tc.in))
		})
	}
}

func TestParseProposedEventsDropsMalformedEntries(t *testing.T) {
	text := `[{"year":1969,"track":"World","title":"Apollo 11","title_zh":"阿波罗11号","tags":["space"]}, {"year":"bad"}]`

	events, err := parseProposedEvents(text)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, 1969.0, events[0].Year)
	assert.Equal(t, models.TrackWorld, events[0].Track)
	assert.Equal(t, "Apollo 11", events[0].Title)
	assert.Equal(t, []string{"space"}, events[0].Tags)
}

func TestParseProposedEventsFiltering(t *testing.T) {
	text := `[
		{"year": 220, "track": "China", "title": "End of Han", "title_zh": "汉朝灭亡", "tags": ["dynasty"]},
		{"year": 476, "track": "Rome", "title": "Fall of Rome", "title_zh": "罗马陷落", "tags": []},
		{"year": 800, "track": "World", "title_zh": "查理曼加冕", "tags": ["empire"]},
		{"year": 1066, "track": "World", "title": "Norman Conquest", "title_zh": "诺曼征服", "tags": "battle"},
		{"year": 1492, "track": "World", "title": "Columbus", "title_zh": "哥伦布", "tags": ["exploration", 7]},
		"not an object"
	]`

	events, err := parseProposedEvents(text)
	require.NoError(t, err)

	// Only the first and last object survive; the malformed tag element is
	// dropped from the otherwise valid entry.
	require.Len(t, events, 2)
	assert.Equal(t, "End of Han", events[0].Title)
	assert.Equal(t, "Columbus", events[1].Title)
	assert.Equal(t, []string{"exploration"}, events[1].Tags)
}

func TestParseProposedEventsNotArray(t *testing.T) {
	_, err := parseProposedEvents(`{"year": 1969}`)
	assert.ErrorIs(t, err, ErrNotArray)
}

func TestParseProposedEventsInvalidJSON(t *testing.T) {
	_, err := parseProposedEvents("here are your events!")
	assert.ErrorIs(t, err, ErrStructuredOutput)
}

func TestParseProposedEventsFenced(t *testing.T) {
	text := "```json\n[{\"year\":1415,\"track\":\"China\",\"title\":\"Treasure voyages\",\"title_zh\":\"郑和下西洋\",\"tags\":[\"exploration\"]}]\n```"

	events, err := parseProposedEvents(text)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.TrackChina, events[0].Track)
}

func TestDecodeJSONError(t *testing.T) {
	var v any
	err := decodeJSON("nope", &v)
	assert.True(t, errors.Is(err, ErrStructuredOutput))
}
