package omp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pkjmesra/go-omp/entity"
)

// Run states reported by the manager.
const (
	StateRequested     = "Requested"
	StateRunning       = "Running"
	StateDone          = "Done"
	StateStopped       = "Stopped"
	StateInternalError = "Internal Error"
)

// WaitForTaskStart blocks until the task has started running.
//
// Returns nil once the run state reaches Running or Done, ErrTaskFailed on
// Internal Error, and otherwise polls until ctx is cancelled. The original
// protocol has no timeout; bound the wait with a context deadline.
func (c *Client) WaitForTaskStart(ctx context.Context, id string) error {
	return c.waitForTask(ctx, id, func(state string) error {
		switch state {
		case StateRunning, StateDone:
			return nil
		case StateInternalError:
			return fmt.Errorf("%w: internal error", ErrTaskFailed)
		}
		return errKeepPolling
	}, nil)
}

// WaitForTaskEnd blocks until the task has finished.
//
// Done is success; Internal Error and Stopped are ErrTaskFailed.
func (c *Client) WaitForTaskEnd(ctx context.Context, id string) error {
	return c.waitForTask(ctx, id, func(state string) error {
		switch state {
		case StateDone:
			return nil
		case StateInternalError:
			return fmt.Errorf("%w: internal error", ErrTaskFailed)
		case StateStopped:
			return fmt.Errorf("%w: stopped", ErrTaskFailed)
		}
		return errKeepPolling
	}, nil)
}

// WaitForTaskStop blocks until the task has stopped.
//
// Stopped and Done are success; Internal Error is ErrTaskFailed. A task the
// manager no longer lists at all is ErrTaskVanished.
func (c *Client) WaitForTaskStop(ctx context.Context, id string) error {
	return c.waitForTask(ctx, id, func(state string) error {
		switch state {
		case StateStopped, StateDone:
			return nil
		case StateInternalError:
			return fmt.Errorf("%w: internal error", ErrTaskFailed)
		}
		return errKeepPolling
	}, ErrTaskVanished)
}

// WaitForTaskDelete blocks until the manager has forgotten the task: a
// status query whose response carries no task status means the delete has
// completed.
func (c *Client) WaitForTaskDelete(ctx context.Context, id string) error {
	req := fmt.Sprintf(`<get_status task_id="%s"/>`, id)
	for {
		resp, err := c.roundTrip(ctx, req)
		if err != nil {
			return err
		}
		if _, ok := TaskStatus(resp); !ok {
			return nil
		}
		if err := c.sleep(ctx, c.pollInterval); err != nil {
			return err
		}
	}
}

// errKeepPolling is returned by classify callbacks for non-terminal states.
var errKeepPolling = errors.New("omp: task not yet in a terminal state")

// waitForTask polls the full status listing until classify reaches a
// verdict on the task's run state. notFound is returned when the listing
// has no entry for the task; nil notFound makes that a MissingElementError.
func (c *Client) waitForTask(ctx context.Context, id string, classify func(state string) error, notFound error) error {
	for {
		resp, err := c.roundTrip(ctx, "<get_status/>")
		if err != nil {
			return err
		}

		if _, err := checkStatus(resp); err == nil {
			state, found, err := taskRunState(resp, id)
			if err != nil {
				return err
			}
			if !found {
				if notFound != nil {
					return notFound
				}
				return &MissingElementError{Element: "task"}
			}
			if err := classify(state); err != errKeepPolling {
				return err
			}
		} else if !isStatusFailure(err) {
			// Missing or malformed status attribute is terminal;
			// a non-2xx code just means poll again.
			return err
		}

		if err := c.sleep(ctx, c.pollInterval); err != nil {
			return err
		}
	}
}

// isStatusFailure distinguishes a well-formed non-success status from a
// malformed one.
func isStatusFailure(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// taskRunState searches the direct children of a status listing for the
// task entry with the given ID and returns its status child's text. The
// task tag and the ID value compare case-insensitively; the search stops at
// the first match and never descends into grandchildren.
func taskRunState(resp *entity.Entity, id string) (state string, found bool, err error) {
	for _, child := range resp.Children {
		if !strings.EqualFold(child.Name, "task") {
			continue
		}
		taskID, ok := child.Attribute("id")
		if !ok {
			return "", false, &MissingElementError{Element: "task id attribute"}
		}
		if !strings.EqualFold(taskID, id) {
			continue
		}
		status := child.Child("status")
		if status == nil {
			return "", false, &MissingElementError{Element: "task status"}
		}
		return status.Text, true, nil
	}
	return "", false, nil
}
