package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartReminderCronJobs(t *testing.T) {
	c, err := StartReminderCronJobs(RunnerFunc(func(context.Context, string) error { return nil }))
	require.NoError(t, err)
	defer c.Stop()

	entries := c.Entries()
	require.Len(t, entries, len(Schedules))
	for _, e := range entries {
		assert.False(t, e.Next.IsZero())
	}
}

func TestStartReminderCronJobsBadSpec(t *testing.T) {
	saved := Schedules
	Schedules = map[string]string{"daily": "not a spec"}
	defer func() { Schedules = saved }()

	_, err := StartReminderCronJobs(RunnerFunc(func(context.Context, string) error { return nil }))
	assert.Error(t, err)
}
