package usage

import (
	"context"

	"rawstore/internal/model"
)

// Package usage contains the storage usage registry abstraction.
// Implementations live in subpackages (e.g. postgres) inside this directory.

// Registry reports cumulative stored bytes per owner, partitioned by
// visibility class. Rows are written elsewhere, after uploads complete;
// reads here return the latest committed total only. A concurrent request
// from the same owner may therefore observe a pre-update figure — an
// accepted race, not one this service closes.
type Registry interface {
	// TotalBytes returns the cumulative stored bytes for the given owner
	// and visibility class.
	TotalBytes(ctx context.Context, owner string, visibility model.Visibility) (int64, error)
}
