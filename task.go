package omp

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// CreateTask creates a task from existing config and target names and
// returns the new task's ID.
func (c *Client) CreateTask(ctx context.Context, name, config, target, comment string) (string, error) {
	req := fmt.Sprintf("<create_task>"+
		"<config>%s</config>"+
		"<target>%s</target>"+
		"<name>%s</name>"+
		"<comment>%s</comment>"+
		"</create_task>",
		config, target, name, comment)
	return c.createWithID(ctx, req, "task_id")
}

// CreateTaskFromPayload creates a task whose description is an arbitrary
// byte payload, transmitted base64-encoded in the rcfile element. An empty
// payload produces an empty element; the encoder is never invoked for zero
// bytes.
func (c *Client) CreateTaskFromPayload(ctx context.Context, payload []byte, name, comment string) (string, error) {
	req := fmt.Sprintf("<create_task>"+
		"<rcfile>%s</rcfile>"+
		"<name>%s</name>"+
		"<comment>%s</comment>"+
		"</create_task>",
		encodePayload(payload), name, comment)
	return c.createWithID(ctx, req, "task_id")
}

// createWithID runs a create operation and extracts the new resource ID from
// the named child of the response.
func (c *Client) createWithID(ctx context.Context, req, idElement string) (string, error) {
	resp, err := c.roundTrip(ctx, req)
	if err != nil {
		return "", err
	}
	if _, err := checkStatus(resp); err != nil {
		return "", err
	}
	id := resp.Child(idElement)
	if id == nil {
		return "", &MissingElementError{Element: idElement}
	}
	return id.Text, nil
}

// encodePayload base64-encodes a payload, keeping the empty-input path
// distinct from encoding zero bytes.
func encodePayload(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(payload)
}

// StartTask asks the manager to start the task.
func (c *Client) StartTask(ctx context.Context, id string) error {
	return c.command(ctx, fmt.Sprintf(`<start_task task_id="%s"/>`, id))
}

// DeleteTask removes the task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.command(ctx, fmt.Sprintf(`<delete_task task_id="%s"/>`, id))
}

// DeleteReport removes a report.
func (c *Client) DeleteReport(ctx context.Context, id string) error {
	return c.command(ctx, fmt.Sprintf(`<delete_report report_id="%s"/>`, id))
}

// taskChanges collects the optional fields of a modify_task request.
type taskChanges struct {
	payload    []byte
	hasPayload bool
	name       *string
	comment    *string
}

// TaskChange selects a task field to modify. Fields not mentioned are
// omitted from the request and left untouched by the manager.
type TaskChange func(*taskChanges)

// WithTaskPayload replaces the task description. An empty payload sends an
// empty rcfile element, which clears the description.
func WithTaskPayload(payload []byte) TaskChange {
	return func(tc *taskChanges) {
		tc.payload = payload
		tc.hasPayload = true
	}
}

// WithTaskName renames the task.
func WithTaskName(name string) TaskChange {
	return func(tc *taskChanges) { tc.name = &name }
}

// WithTaskComment replaces the task comment.
func WithTaskComment(comment string) TaskChange {
	return func(tc *taskChanges) { tc.comment = &comment }
}

// ModifyTask changes the selected fields of a task.
func (c *Client) ModifyTask(ctx context.Context, id string, changes ...TaskChange) error {
	var tc taskChanges
	for _, change := range changes {
		change(&tc)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<modify_task task_id="%s">`, id)
	if tc.hasPayload {
		fmt.Fprintf(&b, "<rcfile>%s</rcfile>", encodePayload(tc.payload))
	}
	if tc.name != nil {
		fmt.Fprintf(&b, "<name>%s</name>", *tc.name)
	}
	if tc.comment != nil {
		fmt.Fprintf(&b, "<comment>%s</comment>", *tc.comment)
	}
	b.WriteString("</modify_task>")

	return c.command(ctx, b.String())
}
