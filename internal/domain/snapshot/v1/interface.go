package snapshotv1

import "context"

// Store persists and retrieves matching service snapshots.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=snapshotv1_mock
type Store interface {
	// Store persists the snapshot, replacing any previous one.
	Store(ctx context.Context, snapshot *Snapshot) error
	// Load returns the latest snapshot, or nil when none exists.
	Load(ctx context.Context) (*Snapshot, error)
}
