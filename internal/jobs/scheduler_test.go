package jobs_test

import (
	"testing"

	"github.com/jengaest/estimate-api/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("b", "0 0 * * * *", func() {}))
	require.NoError(t, s.AddJob("a", "@every 1h", func() {}))
	assert.Equal(t, []string{"a", "b"}, s.JobNames())

	t.Run("duplicate name", func(t *testing.T) {
		assert.Error(t, s.AddJob("a", "@every 1h", func() {}))
	})

	t.Run("invalid expression", func(t *testing.T) {
		assert.Error(t, s.AddJob("bad", "not a schedule", func() {}))
		assert.NotContains(t, s.JobNames(), "bad")
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, s.RemoveJob("b"))
		assert.Equal(t, []string{"a"}, s.JobNames())
		assert.Error(t, s.RemoveJob("b"))
	})

	s.Start()
	<-s.Stop().Done()
}
