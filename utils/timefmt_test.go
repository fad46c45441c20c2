package utils

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSecToTime(t *testing.T) {
	assert.Equal(t, "00:00:00", SecToTime(0))
	assert.Equal(t, "00:00:59", SecToTime(59))
	assert.Equal(t, "00:01:00", SecToTime(60))
	assert.Equal(t, "01:01:01", SecToTime(3661))
	assert.Equal(t, "99:59:59", SecToTime(359999))
	// the hour field widens past two digits
	assert.Equal(t, "100:00:00", SecToTime(360000))
}

func TestTimeToSec(t *testing.T) {
	assert.Equal(t, 0, TimeToSec(0, 0, 0))
	assert.Equal(t, 3661, TimeToSec(1, 1, 1))
	// field ranges are deliberately not validated
	assert.Equal(t, 130, TimeToSec(0, 0, 130))
}

func TestTimeCodec_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sec := rapid.IntRange(0, 359999).Draw(t, "sec")

		parts := strings.Split(SecToTime(sec), ":")
		require.Len(t, parts, 3)

		h, err := strconv.Atoi(parts[0])
		require.NoError(t, err)
		m, err := strconv.Atoi(parts[1])
		require.NoError(t, err)
		s, err := strconv.Atoi(parts[2])
		require.NoError(t, err)

		assert.Equal(t, sec, TimeToSec(h, m, s))
	})
}
