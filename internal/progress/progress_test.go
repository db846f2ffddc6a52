package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterEmitsZeroAtStartAndHundredAtEnd(t *testing.T) {
	t.Parallel()

	r := NewReporter(time.Millisecond)
	var events []Event
	r.Subscribe(func(e Event) { events = append(events, e) })

	r.Start(StageWalk, "starting")
	r.End(StageWalk, "done")

	require.Len(t, events, 2)
	assert.Equal(t, 0, events[0].Percent)
	assert.Equal(t, 100, events[len(events)-1].Percent)
}

func TestReporterTickIsMonotonicallyNonDecreasing(t *testing.T) {
	t.Parallel()

	r := NewReporter(time.Millisecond) // the 2ms sleeps below outlast the throttle
	var percents []int
	r.Subscribe(func(e Event) {
		if e.Kind == KindTick {
			percents = append(percents, e.Percent)
		}
	})

	r.Tick(StageWalk, 10, "")
	time.Sleep(2 * time.Millisecond)
	r.Tick(StageWalk, 5, "") // must not regress below 10
	time.Sleep(2 * time.Millisecond)
	r.Tick(StageWalk, 50, "")

	require.Len(t, percents, 3)
	assert.Equal(t, 10, percents[0])
	assert.Equal(t, 10, percents[1])
	assert.Equal(t, 50, percents[2])
}

func TestReporterThrottlesTicks(t *testing.T) {
	t.Parallel()

	r := NewReporter(time.Hour)
	var count int
	r.Subscribe(func(e Event) {
		if e.Kind == KindTick {
			count++
		}
	})

	r.Tick(StageWalk, 10, "")
	r.Tick(StageWalk, 20, "")
	r.Tick(StageWalk, 30, "")

	assert.Equal(t, 1, count)
}

func TestReporterEndIsIdempotent(t *testing.T) {
	t.Parallel()

	r := NewReporter(time.Millisecond)
	var count int
	r.Subscribe(func(Event) { count++ })

	r.End(StageFormat, "done")
	r.End(StageFormat, "done again")

	assert.Equal(t, 1, count)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	r := NewReporter(time.Millisecond)
	var count int
	unsub := r.Subscribe(func(Event) { count++ })

	r.Start(StageResolve, "")
	unsub()
	r.End(StageResolve, "")

	assert.Equal(t, 1, count)
}
