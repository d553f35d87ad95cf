package provider

import (
	"context"

	"github.com/vietdv277/asgcheck/pkg/types"
)

// FleetProvider defines the read-only queries a group verification needs
type FleetProvider interface {
	// DescribeGroup returns the group snapshot, or an error wrapping
	// ErrGroupNotFound when no group has that name
	DescribeGroup(ctx context.Context, name string) (*types.ScalingGroupSnapshot, error)

	// DescribeAllInstanceStatuses returns a status entry for every instance
	// in the region, regardless of group membership
	DescribeAllInstanceStatuses(ctx context.Context) ([]types.FleetStatusEntry, error)
}
