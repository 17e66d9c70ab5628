// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package demjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrictnessPresets(t *testing.T) {
	strict := NewStrict()
	require.False(t, strict.Allows(Comments))
	require.False(t, strict.Allows(HexNumbers))
	require.False(t, strict.Allows(OctalNumbers))

	nonStrict := NewNonStrict()
	require.True(t, nonStrict.Allows(Comments))
	require.True(t, nonStrict.Allows(HexNumbers))
	require.False(t, nonStrict.Allows(OctalNumbers), "octal_numbers defaults off regardless of strict flag")
}

func TestStrictnessAllowOverridesPreset(t *testing.T) {
	s := NewStrict()
	require.False(t, s.Allows(OctalNumbers))
	require.NoError(t, s.Allow(OctalNumbers))
	require.True(t, s.Allows(OctalNumbers))
	require.NoError(t, s.Prevent(OctalNumbers))
	require.False(t, s.Allows(OctalNumbers))
}

func TestStrictnessUnknownBehaviorIsError(t *testing.T) {
	s := NewStrict()
	err := s.Allow(Behavior("made_up_behavior"))
	require.Error(t, err)
}

func TestStrictnessCloneIsIndependent(t *testing.T) {
	s := NewStrict()
	require.NoError(t, s.Allow(Comments))
	clone := s.Clone()
	require.NoError(t, clone.Prevent(Comments))
	require.True(t, s.Allows(Comments), "mutating the clone must not affect the original")
	require.False(t, clone.Allows(Comments))
}
