package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	cases := map[string]struct {
		id uint
		ok bool
	}{
		"1":    {1, true},
		" 42 ": {42, true},
		"0":    {0, false},
		"-3":   {0, false},
		"abc":  {0, false},
		"":     {0, false},
	}
	for in, want := range cases {
		id, ok := ParseID(in)
		assert.Equal(t, want.ok, ok, in)
		assert.Equal(t, want.id, id, in)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("**bold** <script>alert(1)</script>")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")

	img := RenderMarkdown("![cat](https://example.com/cat.png)")
	assert.Contains(t, img, `loading="lazy"`)
	assert.Contains(t, img, `referrerpolicy="no-referrer"`)

	assert.Equal(t, "", RenderMarkdown(""))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter2")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, CheckPasswordHash("hunter2", hash))
	assert.False(t, CheckPasswordHash("hunter3", hash))
}

func TestHotScore(t *testing.T) {
	fresh := HotScore(10, 0, time.Hour)
	old := HotScore(10, 0, 48*time.Hour)
	assert.Greater(t, fresh, old)

	assert.Zero(t, HotScore(0, 0, time.Hour))
	assert.Zero(t, HotScore(1, 5, time.Hour), "heavily downvoted posts floor at zero")
	assert.Greater(t, HotScore(5, 0, time.Hour), HotScore(5, 2, time.Hour))
}
