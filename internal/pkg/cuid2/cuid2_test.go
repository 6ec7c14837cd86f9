package cuid2

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int64
		expected string
	}{
		{"zero", 0, "000000"},
		{"one second", 1, "000001"},
		{"62 seconds", 62, "000010"},
		{"one minute", 60, "00000y"},
		{"one hour", 3600, "0000w4"},
		{"one day", 86400, "000MTY"},
		{"2024-01-01", 1704067200, "1rK5iq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EncodeTimestamp(tt.seconds))
		})
	}
}

func TestRandomString(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := randomString(24)
		require.Len(t, id, 24)
		for _, c := range id {
			require.True(t, strings.ContainsRune(base62Alphabet, c), "non-base62 character %q", c)
		}
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestPrefixed(t *testing.T) {
	t.Run("time sortable by default", func(t *testing.T) {
		id := Prefixed("req", Options{})
		assert.Regexp(t, regexp.MustCompile(`^req_[0-9A-Za-z]{24}$`), id)
	})

	t.Run("unsorted", func(t *testing.T) {
		id := Prefixed("run", Options{Unsorted: true})
		assert.Regexp(t, regexp.MustCompile(`^run_[0-9A-Za-z]{24}$`), id)
	})

	t.Run("custom length", func(t *testing.T) {
		id := Prefixed("run", Options{Length: 10})
		parts := strings.SplitN(id, "_", 2)
		require.Len(t, parts, 2)
		assert.Len(t, parts[1], timestampLength+10)
	})
}

func TestPrefixedSortsByTime(t *testing.T) {
	first := Prefixed("req", Options{})
	time.Sleep(1100 * time.Millisecond)
	second := Prefixed("req", Options{})

	ts := func(id string) string { return strings.TrimPrefix(id, "req_")[:timestampLength] }
	assert.Less(t, ts(first), ts(second))
}
