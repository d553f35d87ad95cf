package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type fakeASG struct {
	groups      []asgtypes.AutoScalingGroup
	actionPages [][]asgtypes.ScheduledUpdateGroupAction
	err         error

	actionCalls int
}

func (f *fakeASG) DescribeAutoScalingGroups(_ context.Context, in *autoscaling.DescribeAutoScalingGroupsInput, _ ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := &autoscaling.DescribeAutoScalingGroupsOutput{}
	for _, g := range f.groups {
		for _, name := range in.AutoScalingGroupNames {
			if aws.ToString(g.AutoScalingGroupName) == name {
				out.AutoScalingGroups = append(out.AutoScalingGroups, g)
			}
		}
	}
	return out, nil
}

func (f *fakeASG) DescribeScheduledActions(_ context.Context, in *autoscaling.DescribeScheduledActionsInput, _ ...func(*autoscaling.Options)) (*autoscaling.DescribeScheduledActionsOutput, error) {
	f.actionCalls++
	if len(f.actionPages) == 0 {
		return &autoscaling.DescribeScheduledActionsOutput{}, nil
	}
	page := 0
	if in.NextToken != nil {
		fmt.Sscanf(*in.NextToken, "%d", &page)
	}
	out := &autoscaling.DescribeScheduledActionsOutput{ScheduledUpdateGroupActions: f.actionPages[page]}
	if page+1 < len(f.actionPages) {
		out.NextToken = aws.String(fmt.Sprint(page + 1))
	}
	return out, nil
}

type fakeEC2 struct {
	instances  map[string]ec2types.Instance
	statusPage [][]ec2types.InstanceStatus
	// rejectUnknownIDs fails a whole id batch when any id is unknown, as EC2 does
	rejectUnknownIDs bool

	describeCalls  int
	describeInputs []*ec2.DescribeInstancesInput
}

func (f *fakeEC2) DescribeInstances(_ context.Context, in *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.describeCalls++
	f.describeInputs = append(f.describeInputs, in)

	ids := in.InstanceIds
	if len(ids) == 0 {
		for id := range f.instances {
			ids = append(ids, id)
		}
		sort.Strings(ids)
	}

	var res ec2types.Reservation
	for _, id := range ids {
		inst, ok := f.instances[id]
		if !ok {
			if f.rejectUnknownIDs {
				return nil, fmt.Errorf("api error InvalidInstanceID.NotFound: The instance ID '%s' does not exist", id)
			}
			continue
		}
		res.Instances = append(res.Instances, inst)
	}
	return &ec2.DescribeInstancesOutput{Reservations: []ec2types.Reservation{res}}, nil
}

func (f *fakeEC2) DescribeInstanceStatus(_ context.Context, in *ec2.DescribeInstanceStatusInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstanceStatusOutput, error) {
	if len(f.statusPage) == 0 {
		return &ec2.DescribeInstanceStatusOutput{}, nil
	}
	page := 0
	if in.NextToken != nil {
		fmt.Sscanf(*in.NextToken, "%d", &page)
	}
	out := &ec2.DescribeInstanceStatusOutput{InstanceStatuses: f.statusPage[page]}
	if page+1 < len(f.statusPage) {
		out.NextToken = aws.String(fmt.Sprint(page + 1))
	}
	return out, nil
}

type fakeSTS struct{}

func (fakeSTS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return &sts.GetCallerIdentityOutput{
		Account: aws.String("123456789012"),
		Arn:     aws.String("arn:aws:iam::123456789012:user/ops"),
		UserId:  aws.String("AIDAEXAMPLE"),
	}, nil
}

func ec2Instance(id, az, sg, ami, vpc string, launched time.Time) ec2types.Instance {
	return ec2types.Instance{
		InstanceId:     aws.String(id),
		Placement:      &ec2types.Placement{AvailabilityZone: aws.String(az)},
		SecurityGroups: []ec2types.GroupIdentifier{{GroupId: aws.String(sg)}},
		ImageId:        aws.String(ami),
		VpcId:          aws.String(vpc),
		LaunchTime:     aws.Time(launched),
		State:          &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning},
	}
}

func asgInstance(id string) asgtypes.Instance {
	return asgtypes.Instance{InstanceId: aws.String(id)}
}
