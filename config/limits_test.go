package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runepool/librunepool-go/config"
)

func TestDefaultLimitsValid(t *testing.T) {
	limits := config.DefaultLimits()
	require.NoError(t, limits.Validate())
	assert.Equal(t, config.DefaultMaxInputsToSign, limits.MaxInputsToSign)
	assert.Equal(t, config.DefaultMaxShardBtcUtxos, limits.MaxShardBtcUtxos)
}

func TestValidateRejectsNonPositive(t *testing.T) {
	limits := config.DefaultLimits()
	limits.MaxRuneDeltas = 0

	err := limits.Validate()
	require.Error(t, err)

	var le *config.LimitError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "MaxRuneDeltas", le.Name)
}
