package interfaces

import "context"

// IProjectLocker serializes every transition on a given project id.
// Different projects never contend.
type IProjectLocker interface {
	Lock(ctx context.Context, projectID string) (unlock func(), err error)
}
