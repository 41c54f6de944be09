package buffer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/rest/buffer"
)

func TestContext(t *testing.T) {
	// Arrange
	ctx := context.Background()

	// Act
	_, none := buffer.FromContext(ctx)
	ctx, s := buffer.NewContext(ctx)
	again, same := buffer.NewContext(ctx)
	found, ok := buffer.FromContext(again)

	// Assert
	require.False(t, none)
	require.True(t, ok)
	require.Same(t, s, same)
	require.Same(t, s, found)
	require.Equal(t, ctx, again)
}

func TestDrain(t *testing.T) {
	tcs := []struct {
		name     string
		writes   []string
		start    int
		expected string
		depth    int
	}{
		{"Nothing-Open", nil, 0, "", 0},
		{"Above-Start", []string{"a", "b", "c"}, 1, "bc", 1},
		{"All", []string{"a", "b"}, 0, "ab", 0},
		{"At-Start", []string{"a"}, 1, "", 1},
		{"Below-Start", []string{"a"}, 3, "", 1},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			_, s := buffer.NewContext(context.Background())
			rec := httptest.NewRecorder()
			var w http.ResponseWriter = rec
			for _, write := range tc.writes {
				bw := buffer.NewWriter(w, s)
				_, err := bw.Write([]byte(write))
				require.NoError(t, err)
				w = bw
			}

			// Act
			actual := buffer.Drain(s, tc.start)

			// Assert
			require.Equal(t, tc.expected, string(actual))
			require.Equal(t, tc.depth, s.Depth())
			require.Empty(t, rec.Body.String())
		})
	}
}

type stuckLevel struct{ cleaned int }

func (l *stuckLevel) Depth() int { return 5 }

func (l *stuckLevel) Clean() []byte {
	l.cleaned++
	return []byte("x")
}

func TestDrainStuckDepth(t *testing.T) {
	// Arrange
	l := new(stuckLevel)

	// Act
	actual := buffer.Drain(l, 0)

	// Assert
	require.Equal(t, "x", string(actual))
	require.Equal(t, 1, l.cleaned)
	require.Nil(t, buffer.Drain(nil, 0))
}

func TestDrainOnce(t *testing.T) {
	// Arrange
	_, s := buffer.NewContext(context.Background())
	w := buffer.NewWriter(httptest.NewRecorder(), s)
	_, err := w.Write([]byte("partial"))
	require.NoError(t, err)

	// Act
	first := buffer.Drain(s, 0)
	second := buffer.Drain(s, 0)

	// Assert
	require.Equal(t, "partial", string(first))
	require.Empty(t, second)
}

func TestNilStack(t *testing.T) {
	// Arrange
	var s *buffer.Stack

	// Act + Assert
	require.Zero(t, s.Depth())
	require.Nil(t, s.Clean())
}
