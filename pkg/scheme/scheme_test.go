package scheme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeHeader struct {
	Magic uint32
}

func TestResult_Constructors(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		r := Present(&fakeHeader{Magic: 0xAA55}, []int{1, 2})
		require.True(t, r.IsPresent())
		require.False(t, r.IsAbsent())
		require.False(t, r.IsCorrupt())
		require.Equal(t, uint32(0xAA55), r.Header.Magic)
		require.Len(t, r.Partitions, 2)
		require.NoError(t, r.Err)
	})

	t.Run("absent", func(t *testing.T) {
		r := Absent[*fakeHeader, int]()
		require.True(t, r.IsAbsent())
		require.Nil(t, r.Header)
		require.Empty(t, r.Partitions)
		require.NoError(t, r.Err)
	})

	t.Run("corrupt", func(t *testing.T) {
		cause := errors.New("truncated entry array")
		r := Corrupt[*fakeHeader, int](cause)
		require.True(t, r.IsCorrupt())
		require.ErrorIs(t, r.Err, cause)
		require.Nil(t, r.Header)
	})
}

func TestStatus_String(t *testing.T) {
	require.Equal(t, "absent", StatusAbsent.String())
	require.Equal(t, "present", StatusPresent.String())
	require.Equal(t, "corrupt", StatusCorrupt.String())
}

func TestStatus_ZeroValueIsAbsent(t *testing.T) {
	var r Result[*fakeHeader, int]
	require.True(t, r.IsAbsent())
}
