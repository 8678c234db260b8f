package omp

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkjmesra/go-omp/entity"
)

// GetStatus retrieves task status. taskID may be empty to list every task.
// On success the whole response tree is handed to the caller.
func (c *Client) GetStatus(ctx context.Context, taskID string, includeRCFile bool) (*entity.Entity, error) {
	rc := 0
	if includeRCFile {
		rc = 1
	}
	var req string
	if taskID == "" {
		req = fmt.Sprintf(`<get_status rcfile="%d"/>`, rc)
	} else {
		req = fmt.Sprintf(`<get_status task_id="%s" rcfile="%d"/>`, taskID, rc)
	}
	return c.query(ctx, req)
}

// GetReport retrieves a report in NBE format.
func (c *Client) GetReport(ctx context.Context, reportID string) (*entity.Entity, error) {
	return c.query(ctx, fmt.Sprintf(`<get_report format="nbe" report_id="%s"/>`, reportID))
}

// GetPreferences retrieves the manager preferences.
func (c *Client) GetPreferences(ctx context.Context) (*entity.Entity, error) {
	return c.query(ctx, "<get_preferences/>")
}

// GetCertificates retrieves the manager certificates.
func (c *Client) GetCertificates(ctx context.Context) (*entity.Entity, error) {
	return c.query(ctx, "<get_certificates/>")
}

// UntilUp repeatedly invokes fn while it fails with status 503, the
// manager's "still starting up" answer, and returns fn's first other result.
func (c *Client) UntilUp(ctx context.Context, fn func(context.Context) (*entity.Entity, error)) (*entity.Entity, error) {
	for {
		resp, err := fn(ctx)
		var se *StatusError
		if errors.As(err, &se) && se.IsServiceUnavailable() {
			if err := c.sleep(ctx, c.pollInterval); err != nil {
				return nil, err
			}
			continue
		}
		return resp, err
	}
}

// TaskStatus extracts the run-state text from a single-task status
// response: the text of the task element's status child. ok is false when
// the response carries no task status at all, meaning the manager does not
// know the task.
func TaskStatus(resp *entity.Entity) (string, bool) {
	task := resp.Child("task")
	if task == nil {
		return "", false
	}
	status := task.Child("status")
	if status == nil {
		return "", false
	}
	return status.Text, true
}
