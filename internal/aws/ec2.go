package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/vietdv277/asgcheck/pkg/provider"
	pkgtypes "github.com/vietdv277/asgcheck/pkg/types"
)

const resourceInstance = "instance"

// maxInstanceIDs bounds the number of ids sent in one DescribeInstances call
const maxInstanceIDs = 100

// describeMembers resolves group members to instance records, keeping the
// order of ids
func (c *Client) describeMembers(ctx context.Context, ids []string) ([]pkgtypes.InstanceRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	byID := make(map[string]pkgtypes.InstanceRecord, len(ids))
	err := c.forEachInstance(ctx, ids, func(i ec2types.Instance) error {
		rec, err := toInstanceRecord(i)
		if err != nil {
			return err
		}
		byID[rec.ID] = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	instances := make([]pkgtypes.InstanceRecord, 0, len(ids))
	for _, id := range ids {
		rec, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", provider.ErrInstanceNotFound, id)
		}
		instances = append(instances, rec)
	}

	return instances, nil
}

// DescribeAllInstanceStatuses lists the status of every instance in the
// region, including stopped and recently terminated ones. The result is not
// scoped to any group.
func (c *Client) DescribeAllInstanceStatuses(ctx context.Context) ([]pkgtypes.FleetStatusEntry, error) {
	var entries []pkgtypes.FleetStatusEntry
	var nextToken *string

	for {
		output, err := c.EC2.DescribeInstanceStatus(ctx, &ec2.DescribeInstanceStatusInput{
			IncludeAllInstances: aws.Bool(true),
			NextToken:           nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe instance status: %w", err)
		}

		for _, s := range output.InstanceStatuses {
			entry, err := toFleetStatusEntry(s)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	if len(entries) == 0 {
		return entries, nil
	}

	// Instance status carries no launch time. It is read from a region-wide
	// listing rather than by id, since EC2 rejects a whole id batch once any
	// terminated instance in it has been purged.
	launchTimes, err := c.listLaunchTimes(ctx)
	if err != nil {
		return nil, err
	}

	// Instances purged between the two listings are dropped
	kept := entries[:0]
	for _, e := range entries {
		lt, ok := launchTimes[e.InstanceID]
		if !ok {
			continue
		}
		e.LaunchTime = lt
		kept = append(kept, e)
	}

	return kept, nil
}

// listLaunchTimes returns the launch time of every instance in the region
func (c *Client) listLaunchTimes(ctx context.Context) (map[string]time.Time, error) {
	launchTimes := make(map[string]time.Time)
	var nextToken *string

	for {
		output, err := c.EC2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe instances: %w", err)
		}

		for _, reservation := range output.Reservations {
			for _, inst := range reservation.Instances {
				id := deref(inst.InstanceId)
				if inst.LaunchTime == nil {
					return nil, &provider.MissingFieldError{Resource: resourceInstance, ID: id, Field: "LaunchTime"}
				}
				launchTimes[id] = *inst.LaunchTime
			}
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return launchTimes, nil
}

// forEachInstance describes the given instance ids in batches and calls fn
// for every instance returned
func (c *Client) forEachInstance(ctx context.Context, ids []string, fn func(ec2types.Instance) error) error {
	for start := 0; start < len(ids); start += maxInstanceIDs {
		end := min(start+maxInstanceIDs, len(ids))

		var nextToken *string
		for {
			output, err := c.EC2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
				InstanceIds: ids[start:end],
				NextToken:   nextToken,
			})
			if err != nil {
				return fmt.Errorf("failed to describe instances: %w", err)
			}

			for _, reservation := range output.Reservations {
				for _, inst := range reservation.Instances {
					if err := fn(inst); err != nil {
						return err
					}
				}
			}

			if output.NextToken == nil {
				break
			}
			nextToken = output.NextToken
		}
	}

	return nil
}

// toInstanceRecord converts an EC2 Instance to an InstanceRecord
func toInstanceRecord(i ec2types.Instance) (pkgtypes.InstanceRecord, error) {
	if i.InstanceId == nil {
		return pkgtypes.InstanceRecord{}, &provider.MissingFieldError{Resource: resourceInstance, Field: "InstanceId"}
	}
	id := *i.InstanceId

	missing := func(field string) error {
		return &provider.MissingFieldError{Resource: resourceInstance, ID: id, Field: field}
	}

	if i.Placement == nil || i.Placement.AvailabilityZone == nil {
		return pkgtypes.InstanceRecord{}, missing("Placement.AvailabilityZone")
	}
	if i.ImageId == nil {
		return pkgtypes.InstanceRecord{}, missing("ImageId")
	}
	if i.VpcId == nil {
		return pkgtypes.InstanceRecord{}, missing("VpcId")
	}
	if i.LaunchTime == nil {
		return pkgtypes.InstanceRecord{}, missing("LaunchTime")
	}
	if i.State == nil {
		return pkgtypes.InstanceRecord{}, missing("State")
	}

	rec := pkgtypes.InstanceRecord{
		ID:         id,
		AZ:         *i.Placement.AvailabilityZone,
		ImageID:    *i.ImageId,
		VpcID:      *i.VpcId,
		LaunchTime: *i.LaunchTime,
		State:      string(i.State.Name),
	}

	for _, sg := range i.SecurityGroups {
		if sg.GroupId == nil {
			return pkgtypes.InstanceRecord{}, missing("SecurityGroups.GroupId")
		}
		rec.SecurityGroups = append(rec.SecurityGroups, *sg.GroupId)
	}

	return rec, nil
}

func toFleetStatusEntry(s ec2types.InstanceStatus) (pkgtypes.FleetStatusEntry, error) {
	if s.InstanceId == nil {
		return pkgtypes.FleetStatusEntry{}, &provider.MissingFieldError{Resource: resourceInstance, Field: "InstanceId"}
	}
	if s.InstanceState == nil {
		return pkgtypes.FleetStatusEntry{}, &provider.MissingFieldError{Resource: resourceInstance, ID: *s.InstanceId, Field: "InstanceState"}
	}

	return pkgtypes.FleetStatusEntry{
		InstanceID: *s.InstanceId,
		State:      string(s.InstanceState.Name),
	}, nil
}

// deref safely dereferences a string pointer
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
