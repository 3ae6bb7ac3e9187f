// Package watcher monitors the input directory for new transcript
// files and dispatches them to the processing pipeline.
package watcher

import "context"

// EventHandler processes one newly detected transcript file
type EventHandler func(ctx context.Context, path string) error

// Watcher monitors a directory until its context is cancelled
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}
