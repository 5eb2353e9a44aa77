// Package config loads the event subsystem configuration from TOML and
// watches the file for changes.
//
// A missing configuration file is not an error; defaults apply. The
// watcher reports change signals on a channel so the tick-owning loop can
// drain them and republish through the bus, keeping all bus access
// thread-confined.
package config
