package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_WriteText(t *testing.T) {
	var got string
	s := &System{write: func(text string) error {
		got = text
		return nil
	}}

	require.NoError(t, s.WriteText("1) Annotated Text:\nHello\n"))
	assert.Equal(t, "1) Annotated Text:\nHello\n", got)
}

func TestSystem_WriteText_Error(t *testing.T) {
	s := &System{write: func(string) error { return errors.New("no xclip") }}

	err := s.WriteText("x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing clipboard")
}

func TestNewSystem(t *testing.T) {
	assert.NotNil(t, NewSystem().write)
}
