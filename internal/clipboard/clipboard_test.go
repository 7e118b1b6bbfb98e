// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabled(t *testing.T) {
	assert.ErrorIs(t, Disabled{}.Write("x"), ErrUnavailable)
	assert.IsType(t, Disabled{}, New(false))
}

func TestMemory(t *testing.T) {
	var m Memory
	require.NoError(t, m.Write("first"))
	require.NoError(t, m.Write("second"))
	last, n := m.Last()
	assert.Equal(t, "second", last)
	assert.Equal(t, 2, n)
}

func TestNew_EnabledMatchesPlatform(t *testing.T) {
	s := New(true)
	if Unsupported() {
		assert.IsType(t, Disabled{}, s)
		assert.ErrorIs(t, System{}.Write("x"), ErrUnavailable)
	} else {
		assert.IsType(t, System{}, s)
	}
}
