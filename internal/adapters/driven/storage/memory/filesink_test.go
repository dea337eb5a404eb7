package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_WriteAndRemove(t *testing.T) {
	ctx := context.Background()
	sink := NewFileSink()

	p, err := sink.WriteFile(ctx, "out", "a.png", []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, "out/a.png", p)
	assert.Equal(t, []string{"out/a.png"}, sink.Paths())

	require.NoError(t, sink.Remove(ctx, p))
	assert.Empty(t, sink.Paths())
	assert.NoError(t, sink.Remove(ctx, p))
}

func TestFileSink_FailName(t *testing.T) {
	ctx := context.Background()
	sink := NewFileSink()
	sink.Err = errors.New("disk full")
	sink.FailName = "b.png"

	_, err := sink.WriteFile(ctx, "out", "a.png", nil)
	require.NoError(t, err)
	_, err = sink.WriteFile(ctx, "out", "b.png", nil)
	assert.EqualError(t, err, "disk full")
}
