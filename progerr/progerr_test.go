package progerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runepool/librunepool-go/progerr"
)

func TestCodeOf(t *testing.T) {
	sentinel := progerr.New(123, "pkg: something went wrong")

	code, ok := progerr.CodeOf(sentinel)
	require.True(t, ok)
	assert.Equal(t, progerr.Code(123), code)

	wrapped := fmt.Errorf("%w: while doing work", sentinel)
	code, ok = progerr.CodeOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, progerr.Code(123), code)
	assert.True(t, errors.Is(wrapped, sentinel))

	_, ok = progerr.CodeOf(errors.New("plain"))
	assert.False(t, ok)
}
