// Package entity implements a streaming XML entity-tree reader.
//
// An Entity is one XML element node: name, accumulated character data,
// attributes, and ordered children. The key function is Reader.ReadEntity,
// which pulls bytes from a transport.Session until exactly one top-level
// element has closed and returns the completed tree.
//
// The package tolerates arbitrary chunking of the byte stream: start tags,
// attributes, end tags, and text runs may be split anywhere, including
// byte-at-a-time delivery. Tokenization is delegated to encoding/xml; the
// Builder assembles whole start/text/end events into a tree.
//
// Only the XML subset spoken by the manager is supported: elements,
// attributes, nested children, and accumulated text. There is no DTD,
// namespace, or entity-reference handling beyond what encoding/xml performs.
package entity
