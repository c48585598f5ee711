package env

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Setenv("REWARDTRACK_TEST_VALUE", "set")
	require.Equal(t, "set", Get("REWARDTRACK_TEST_VALUE", "fallback"))
	require.Equal(t, "fallback", Get("REWARDTRACK_TEST_MISSING", "fallback"))
}

func TestGetBool(t *testing.T) {
	t.Setenv("REWARDTRACK_TEST_BOOL", "1")
	require.True(t, GetBool("REWARDTRACK_TEST_BOOL", false))

	t.Setenv("REWARDTRACK_TEST_BOOL", "nope")
	require.False(t, GetBool("REWARDTRACK_TEST_BOOL", false))

	require.True(t, GetBool("REWARDTRACK_TEST_BOOL_MISSING", true))
}
