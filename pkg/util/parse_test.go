package util

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	require.True(t, ok)
	assert.Equal(t, s, got.UTC().Format(time.RFC3339))

	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok = ParseTime(strconv.FormatInt(ts, 10))
	require.True(t, ok)
	assert.Equal(t, ts, got.Unix())

	def := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, ParseTimeDefault("yesterday", def).Equal(def))
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("x", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
}

func TestParseRange(t *testing.T) {
	from, to, err := ParseRange("10:60")
	require.NoError(t, err)
	assert.Equal(t, [2]int{10, 60}, [2]int{from, to})

	from, to, err = ParseRange("25")
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 25}, [2]int{from, to})

	for _, bad := range []string{"", "a:b", "5:5", "-1:4", "9:3"} {
		_, _, err := ParseRange(bad)
		assert.Error(t, err, bad)
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"america", "uk"}, SplitList(" america, ,uk "))
	assert.Nil(t, SplitList(""))
}
