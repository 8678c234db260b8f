package omp

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Environment variables consulted by EnvAuthenticate.
const (
	EnvUser     = "OPENVAS_TEST_USER"
	EnvPassword = "OPENVAS_TEST_PASSWORD"
)

// Authenticate opens the session for the given user.
//
// A response outside the success class returns ErrAuthRejected (wrapping the
// StatusError); transport and response-format failures surface as their own
// error types.
func (c *Client) Authenticate(ctx context.Context, username, password string) error {
	req := fmt.Sprintf("<authenticate><credentials>"+
		"<username>%s</username>"+
		"<password>%s</password>"+
		"</credentials></authenticate>",
		username, password)

	resp, err := c.roundTrip(ctx, req)
	if err != nil {
		return err
	}
	if _, err := checkStatus(resp); err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return fmt.Errorf("%w: %w", ErrAuthRejected, se)
		}
		return err
	}
	return nil
}

// EnvAuthenticate authenticates with credentials from the environment: the
// username from OPENVAS_TEST_USER, falling back to USER, and the password
// from OPENVAS_TEST_PASSWORD.
func (c *Client) EnvAuthenticate(ctx context.Context) error {
	user := os.Getenv(EnvUser)
	if user == "" {
		user = os.Getenv("USER")
	}
	if user == "" {
		return fmt.Errorf("omp: no username in %s or USER", EnvUser)
	}

	password, ok := os.LookupEnv(EnvPassword)
	if !ok {
		return fmt.Errorf("omp: no password in %s", EnvPassword)
	}

	return c.Authenticate(ctx, user, password)
}
