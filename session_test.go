package vexterm

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionRunsChildOutputThroughRenderer(t *testing.T) {
	s, err := NewSession(SessionOptions{
		Command: "/bin/echo",
		Args:    []string{"hello from pty"},
		Cols:    40,
		Rows:    6,
	})
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer s.Close()

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("child did not finish")
	}

	var screen string
	s.View(func(r *Renderer) {
		var b strings.Builder
		for _, row := range r.ScreenContent() {
			for _, cell := range row {
				b.WriteRune(cell.Char)
			}
		}
		screen = b.String()
	})
	require.Contains(t, screen, "hello from pty")
}

func TestSessionResizePropagates(t *testing.T) {
	s, err := NewSession(SessionOptions{
		Command: "/bin/sleep",
		Args:    []string{"5"},
		Cols:    40,
		Rows:    6,
	})
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer s.Close()

	require.NoError(t, s.Resize(20, 4))
	s.View(func(r *Renderer) {
		cols, rows := r.Size()
		require.Equal(t, 20, cols)
		require.Equal(t, 4, rows)
	})

	require.Error(t, s.Resize(0, 4))
}
