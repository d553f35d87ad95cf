package types

import "time"

// ScalingGroupSnapshot is a point-in-time view of an Auto Scaling Group
// built for a single verification run.
type ScalingGroupSnapshot struct {
	Name             string
	DesiredCapacity  int
	Instances        []InstanceRecord  // in the order reported by the group
	ScheduledActions []ScheduledAction // in the order reported by the API
}

// ScheduledAction represents a time-triggered capacity change on a group
type ScheduledAction struct {
	Name            string
	StartTime       time.Time
	Recurrence      string
	DesiredCapacity *int
	MinSize         *int
	MaxSize         *int
}
