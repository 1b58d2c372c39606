package sourcelit

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/mdapi/internal/domain"
)

const embedScript = `
const player = new Plyr('#player');
player.source = {
    type: 'video',
    sources: [
        {
        src: 'https://cdn.example.test/v/1080.mp4',
        type: 'video/mp4',
        size: 1080,
        },
        {
        src: 'https://cdn.example.test/v/720.mp4',
        type: 'video/mp4',
        size: 720,
        },
    ]
};
`

func TestParseVideoSources_EmbedScript(t *testing.T) {
	got, err := ParseVideoSources(embedScript)
	require.NoError(t, err)

	want := []domain.VideoSource{
		{Src: "https://cdn.example.test/v/1080.mp4", Type: "video/mp4", Size: domain.NumberSize(1080)},
		{Src: "https://cdn.example.test/v/720.mp4", Type: "video/mp4", Size: domain.NumberSize(720)},
	}
	assert.Equal(t, want, got)
}

func TestParseVideoSources_TrailingCommasEquivalent(t *testing.T) {
	with := `player.source = { type: 'video', sources: [ {src: 'a.mp4', type: 'video/mp4', size: 'HD',}, {src: 'b.mp4', type: 'video/mp4', size: 'SD',}, ] }`
	without := `player.source = { type: 'video', sources: [ {src: 'a.mp4', type: 'video/mp4', size: 'HD'}, {src: 'b.mp4', type: 'video/mp4', size: 'SD'} ] }`

	a, err := ParseVideoSources(with)
	require.NoError(t, err)
	b, err := ParseVideoSources(without)
	require.NoError(t, err)

	assert.Equal(t, b, a)
	require.Len(t, a, 2)
	assert.Equal(t, domain.LabelSize("HD"), a[0].Size)
}

func TestParseVideoSources_NotFound(t *testing.T) {
	_, err := ParseVideoSources(`var x = 1; console.log("player ready");`)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageLocate, se.Stage)
}

func TestParseVideoSources_DecodeFailureIsNotNotFound(t *testing.T) {
	// quality 不是已知键，保持裸键，解码必然失败。
	_, err := ParseVideoSources(`player.source = { type: 'video', sources: [ {src: 'a.mp4', quality: 'HD'} ] }`)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageDecode, se.Stage)
	assert.Contains(t, se.Body, "quality")
}

func TestParseVideoSources_EmptyArray(t *testing.T) {
	got, err := ParseVideoSources(`player.source = { type: 'video', sources: [] }`)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalizeQuotes(t *testing.T) {
	in := "\n        {src: 'a'},\n        "
	assert.Equal(t, `{src: "a"},`, NormalizeQuotes(in))
}

func TestQuoteKeys(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"known keys", `{src: "a", type: "b", size: 1}`, `{"src": "a", "type": "b", "size": 1}`},
		{"no space before value", `{src:"a"}`, `{"src":"a"}`},
		{"inside string untouched", `{src: "https://x.test/type: y"}`, `{"src": "https://x.test/type: y"}`},
		{"unknown key kept bare", `{label: "x"}`, `{label: "x"}`},
		{"already quoted", `{"src": "a"}`, `{"src": "a"}`},
		{"identifier value", `{size: null}`, `{"size": null}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, QuoteKeys(tc.in))
		})
	}
}

func TestStripTrailingCommas(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"before brace", `{"a": 1,}`, `{"a": 1}`},
		{"before brace with space", `{"a": 1, }`, `{"a": 1 }`},
		{"end of body", `{"a": 1},`, `{"a": 1}`},
		{"comma inside string", `{"a": "x,}"}`, `{"a": "x,}"}`},
		{"between objects kept", `{"a": 1}, {"a": 2}`, `{"a": 1}, {"a": 2}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripTrailingCommas(tc.in))
		})
	}
}

func TestDecode_SizeKeepsShape(t *testing.T) {
	got, err := Decode(`{"src": "a", "type": "video/mp4", "size": 720}, {"src": "b", "type": "video/mp4", "size": "HD"}`)
	require.NoError(t, err)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"src":"a","type":"video/mp4","size":720},{"src":"b","type":"video/mp4","size":"HD"}]`, string(b))
}

func TestParseVideoSources_NullSizeStaysNull(t *testing.T) {
	got, err := ParseVideoSources(`player.source = { type: 'video', sources: [ {src: 'a.mp4', type: 'video/mp4', size: null} ] }`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Size.Null)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"src":"a.mp4","type":"video/mp4","size":null}]`, string(b))
}
