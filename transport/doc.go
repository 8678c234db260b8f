// Package transport defines the session boundary the protocol client speaks
// through: two blocking primitives, send a buffer and receive up to N bytes.
//
// Session establishment, authentication of the channel, and encryption are
// the session implementation's concern. TLSSession is the reference
// implementation; tests substitute scripted sessions.
package transport
