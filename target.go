package omp

import (
	"context"
	"fmt"
)

// CreateTarget creates a named host target. The comment element is omitted
// entirely when comment is empty, not sent empty.
func (c *Client) CreateTarget(ctx context.Context, name, hosts, comment string) error {
	var req string
	if comment != "" {
		req = fmt.Sprintf("<create_target>"+
			"<name>%s</name>"+
			"<hosts>%s</hosts>"+
			"<comment>%s</comment>"+
			"</create_target>",
			name, hosts, comment)
	} else {
		req = fmt.Sprintf("<create_target>"+
			"<name>%s</name>"+
			"<hosts>%s</hosts>"+
			"</create_target>",
			name, hosts)
	}
	return c.command(ctx, req)
}

// DeleteTarget removes a target by name.
func (c *Client) DeleteTarget(ctx context.Context, name string) error {
	return c.command(ctx, fmt.Sprintf("<delete_target><name>%s</name></delete_target>", name))
}

// CreateConfig creates a scan config from an arbitrary byte payload,
// base64-encoded like CreateTaskFromPayload. The comment is optional.
func (c *Client) CreateConfig(ctx context.Context, name, comment string, payload []byte) error {
	var req string
	if comment != "" {
		req = fmt.Sprintf("<create_config>"+
			"<name>%s</name>"+
			"<comment>%s</comment>"+
			"<rcfile>%s</rcfile>"+
			"</create_config>",
			name, comment, encodePayload(payload))
	} else {
		req = fmt.Sprintf("<create_config>"+
			"<name>%s</name>"+
			"<rcfile>%s</rcfile>"+
			"</create_config>",
			name, encodePayload(payload))
	}
	return c.command(ctx, req)
}

// DeleteConfig removes a scan config by name.
func (c *Client) DeleteConfig(ctx context.Context, name string) error {
	return c.command(ctx, fmt.Sprintf("<delete_config><name>%s</name></delete_config>", name))
}
