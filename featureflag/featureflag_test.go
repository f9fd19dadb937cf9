package featureflag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeatureFlag(t *testing.T) {
	f := New([]string{string(FlagDisableRadiusQueries)})

	t.Run("run if enabled", func(t *testing.T) {
		var runDisableRadius bool
		f.IfSet(FlagDisableRadiusQueries, func() {
			runDisableRadius = true
		})
		require.True(t, runDisableRadius)

		var runDisablePoint bool
		f.IfSet(FlagDisablePointQueries, func() {
			runDisablePoint = true
		})
		require.False(t, runDisablePoint)
	})

	t.Run("run if disabled", func(t *testing.T) {
		var runDisableRadius bool
		f.IfNotSet(FlagDisableRadiusQueries, func() {
			runDisableRadius = true
		})
		require.False(t, runDisableRadius)

		var runDisablePoint bool
		f.IfNotSet(FlagDisablePointQueries, func() {
			runDisablePoint = true
		})
		require.True(t, runDisablePoint)
	})
}
