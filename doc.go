// Package omp is a client for the OpenVAS Management Protocol (OMP): a
// stateful XML request/response protocol driving a remote
// vulnerability-management manager over an authenticated, encrypted session.
//
// # Architecture
//
// The module is organized into layers:
//
//	┌────────────────────────────────────────────────────────┐
//	│  scan/        High-level scan workflow + TOML config   │
//	├────────────────────────────────────────────────────────┤
//	│  omp (root)   Protocol operations and status handling  │
//	├────────────────────────────────────────────────────────┤
//	│  entity/      Streaming XML entity-tree reader         │
//	├────────────────────────────────────────────────────────┤
//	│  transport/   Session primitives (TLS reference impl)  │
//	└────────────────────────────────────────────────────────┘
//
// # Quick start
//
//	sess, err := transport.Dial("manager:9390")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close()
//
//	c := omp.NewClient(sess)
//	if err := c.Authenticate(ctx, "user", "password"); err != nil {
//	    log.Fatal(err)
//	}
//	id, err := c.CreateTask(ctx, "nightly", "Full and fast", "lan", "")
//
// A session is strictly half-duplex: one request is outstanding at a time,
// and every operation fully drains its response before returning. Clients
// are not safe for concurrent use; open one session per goroutine instead.
package omp
