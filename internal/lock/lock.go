// Package lock serializes work on a single key, either inside one process or
// across instances through Redis.
package lock

import "context"

// Locker acquires an exclusive lock on key. The returned func releases it and
// must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
