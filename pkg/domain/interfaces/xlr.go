package interfaces

import (
	"context"

	"github.com/m-mizutani/xlrbot/pkg/domain/model"
	"github.com/m-mizutani/xlrbot/pkg/domain/types"
)

// ReleaseAPI defines the release lookup operations of XL Release
type ReleaseAPI interface {
	// GetRelease returns the release with the given id
	GetRelease(ctx context.Context, releaseID types.ReleaseID) (*model.Release, error)
}
