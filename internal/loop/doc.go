// Package loop drives the event subsystem at a fixed tick rate.
//
// The loop goroutine is the single thread that owns the bus: every tick it
// drains config-watcher signals into deferred events, then calls
// ServiceQueue. Nothing else may touch the bus while the loop runs.
package loop
