// Package events defines the payload structs carried by engine-defined
// event kinds. Payloads are plain data; the bus treats them as opaque.
package events
