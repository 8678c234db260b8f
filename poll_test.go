package omp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusListing(id, state string) string {
	return `<get_status_response status="200">` +
		`<task id="` + id + `"><status>` + state + `</status></task>` +
		`</get_status_response>`
}

// Requested, Running, Done: two sleeps, then success.
func TestWaitForTaskEnd(t *testing.T) {
	c, sess, sleeps := newTestClient(
		statusListing("t1", StateRequested),
		statusListing("t1", StateRunning),
		statusListing("t1", StateDone),
	)

	require.NoError(t, c.WaitForTaskEnd(context.Background(), "t1"))
	assert.Equal(t, 2, *sleeps)
	assert.Equal(t, "<get_status/>", sess.lastRequest(t))
}

func TestWaitForTaskEndStopped(t *testing.T) {
	c, _, _ := newTestClient(statusListing("t1", StateStopped))
	require.ErrorIs(t, c.WaitForTaskEnd(context.Background(), "t1"), ErrTaskFailed)
}

func TestWaitForTaskEndInternalError(t *testing.T) {
	c, _, _ := newTestClient(statusListing("t1", StateInternalError))
	require.ErrorIs(t, c.WaitForTaskEnd(context.Background(), "t1"), ErrTaskFailed)
}

// The listing carries other tasks but not the one asked about.
func TestWaitForTaskEndMissingTask(t *testing.T) {
	c, _, _ := newTestClient(statusListing("other", StateDone))

	err := c.WaitForTaskEnd(context.Background(), "t1")
	var merr *MissingElementError
	require.ErrorAs(t, err, &merr)
}

// Tag and ID comparison is case-insensitive; the first matching child wins.
func TestWaitForTaskEndCaseInsensitiveMatch(t *testing.T) {
	c, _, _ := newTestClient(
		`<get_status_response status="200">` +
			`<TASK id="ABC-1"><status>Done</status></TASK>` +
			`<task id="abc-1"><status>Stopped</status></task>` +
			`</get_status_response>`)

	require.NoError(t, c.WaitForTaskEnd(context.Background(), "abc-1"))
}

func TestWaitForTaskStart(t *testing.T) {
	c, _, sleeps := newTestClient(
		statusListing("t1", StateRequested),
		statusListing("t1", StateRunning),
	)

	require.NoError(t, c.WaitForTaskStart(context.Background(), "t1"))
	assert.Equal(t, 1, *sleeps)
}

func TestWaitForTaskStartDoneAlready(t *testing.T) {
	c, _, sleeps := newTestClient(statusListing("t1", StateDone))
	require.NoError(t, c.WaitForTaskStart(context.Background(), "t1"))
	assert.Zero(t, *sleeps)
}

// A non-2xx listing status means "ask again", not failure.
func TestWaitRetriesOnNonSuccessStatus(t *testing.T) {
	c, _, sleeps := newTestClient(
		`<get_status_response status="503"/>`,
		statusListing("t1", StateRunning),
	)

	require.NoError(t, c.WaitForTaskStart(context.Background(), "t1"))
	assert.Equal(t, 1, *sleeps)
}

func TestWaitMissingStatusAttributeIsTerminal(t *testing.T) {
	c, _, _ := newTestClient(`<get_status_response/>`)
	require.ErrorIs(t, c.WaitForTaskStart(context.Background(), "t1"), ErrStatusMissing)
}

func TestWaitForTaskStop(t *testing.T) {
	c, _, _ := newTestClient(statusListing("t1", StateStopped))
	require.NoError(t, c.WaitForTaskStop(context.Background(), "t1"))
}

// A task that disappears from the listing while stopping is its own error.
func TestWaitForTaskStopVanished(t *testing.T) {
	c, _, _ := newTestClient(`<get_status_response status="200"/>`)
	require.ErrorIs(t, c.WaitForTaskStop(context.Background(), "t1"), ErrTaskVanished)
}

// Deletion succeeds when the manager stops reporting any status for the
// task.
func TestWaitForTaskDelete(t *testing.T) {
	c, sess, sleeps := newTestClient(
		statusListing("t1", StateDone),
		`<get_status_response status="404"/>`,
	)

	require.NoError(t, c.WaitForTaskDelete(context.Background(), "t1"))
	assert.Equal(t, 1, *sleeps)
	assert.Equal(t, `<get_status task_id="t1"/>`, sess.lastRequest(t))
}

func TestWaitForTaskDeleteImmediate(t *testing.T) {
	c, _, sleeps := newTestClient(`<get_status_response status="200"/>`)
	require.NoError(t, c.WaitForTaskDelete(context.Background(), "t1"))
	assert.Zero(t, *sleeps)
}

// Cancellation interrupts an otherwise unbounded poll during the
// inter-iteration sleep.
func TestWaitCancelledDuringSleep(t *testing.T) {
	c, _, _ := newTestClient(statusListing("t1", StateRequested))

	ctx, cancel := context.WithCancel(context.Background())
	c.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	require.ErrorIs(t, c.WaitForTaskEnd(ctx, "t1"), context.Canceled)
}

func TestTaskRunStateMissingIDAttribute(t *testing.T) {
	c, _, _ := newTestClient(
		`<get_status_response status="200"><task><status>Done</status></task></get_status_response>`)

	err := c.WaitForTaskEnd(context.Background(), "t1")
	var merr *MissingElementError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "task id attribute", merr.Element)
}
