package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"

	"github.com/vietdv277/asgcheck/pkg/provider"
	pkgtypes "github.com/vietdv277/asgcheck/pkg/types"
)

const resourceGroup = "auto scaling group"
const resourceScheduledAction = "scheduled action"

// DescribeGroup returns a snapshot of the named Auto Scaling Group with its
// member instances resolved through EC2 and its scheduled actions attached
func (c *Client) DescribeGroup(ctx context.Context, name string) (*pkgtypes.ScalingGroupSnapshot, error) {
	output, err := c.ASG.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
		AutoScalingGroupNames: []string{name},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe auto scaling group: %w", err)
	}

	if len(output.AutoScalingGroups) == 0 {
		return nil, fmt.Errorf("%w: %q", provider.ErrGroupNotFound, name)
	}

	snapshot, memberIDs, err := toSnapshot(output.AutoScalingGroups[0])
	if err != nil {
		return nil, err
	}

	instances, err := c.describeMembers(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get ASG instances: %w", err)
	}
	snapshot.Instances = instances

	actions, err := c.listScheduledActions(ctx, snapshot.Name)
	if err != nil {
		return nil, err
	}
	snapshot.ScheduledActions = actions

	return snapshot, nil
}

func (c *Client) listScheduledActions(ctx context.Context, name string) ([]pkgtypes.ScheduledAction, error) {
	var actions []pkgtypes.ScheduledAction
	var nextToken *string

	for {
		output, err := c.ASG.DescribeScheduledActions(ctx, &autoscaling.DescribeScheduledActionsInput{
			AutoScalingGroupName: aws.String(name),
			NextToken:            nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe scheduled actions: %w", err)
		}

		for _, a := range output.ScheduledUpdateGroupActions {
			action, err := toScheduledAction(a)
			if err != nil {
				return nil, err
			}
			actions = append(actions, action)
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return actions, nil
}

// toSnapshot converts an AWS ASG to a snapshot without instance details and
// returns the member instance ids in group order
func toSnapshot(g asgtypes.AutoScalingGroup) (*pkgtypes.ScalingGroupSnapshot, []string, error) {
	if g.AutoScalingGroupName == nil {
		return nil, nil, &provider.MissingFieldError{Resource: resourceGroup, Field: "AutoScalingGroupName"}
	}
	name := *g.AutoScalingGroupName

	if g.DesiredCapacity == nil {
		return nil, nil, &provider.MissingFieldError{Resource: resourceGroup, ID: name, Field: "DesiredCapacity"}
	}

	ids := make([]string, 0, len(g.Instances))
	for _, inst := range g.Instances {
		if inst.InstanceId == nil {
			return nil, nil, &provider.MissingFieldError{Resource: resourceGroup, ID: name, Field: "Instances.InstanceId"}
		}
		ids = append(ids, *inst.InstanceId)
	}

	return &pkgtypes.ScalingGroupSnapshot{
		Name:            name,
		DesiredCapacity: int(*g.DesiredCapacity),
	}, ids, nil
}

func toScheduledAction(a asgtypes.ScheduledUpdateGroupAction) (pkgtypes.ScheduledAction, error) {
	name := deref(a.ScheduledActionName)
	if a.StartTime == nil {
		return pkgtypes.ScheduledAction{}, &provider.MissingFieldError{Resource: resourceScheduledAction, ID: name, Field: "StartTime"}
	}

	return pkgtypes.ScheduledAction{
		Name:            name,
		StartTime:       *a.StartTime,
		Recurrence:      deref(a.Recurrence),
		DesiredCapacity: intPtr(a.DesiredCapacity),
		MinSize:         intPtr(a.MinSize),
		MaxSize:         intPtr(a.MaxSize),
	}, nil
}

// intPtr converts an optional int32 to an optional int
func intPtr(i *int32) *int {
	if i == nil {
		return nil
	}
	v := int(*i)
	return &v
}
