package types

import "time"

// StateTerminated is the EC2 lifecycle state of a terminated instance
const StateTerminated = "terminated"

// InstanceRecord represents one member of an Auto Scaling Group
type InstanceRecord struct {
	ID             string
	AZ             string
	SecurityGroups []string // group ids, primary first
	ImageID        string
	VpcID          string
	LaunchTime     time.Time
	State          string
}

// PrimarySecurityGroup returns the first security group id, or "" when the
// instance has none.
func (i InstanceRecord) PrimarySecurityGroup() string {
	if len(i.SecurityGroups) == 0 {
		return ""
	}
	return i.SecurityGroups[0]
}

// FleetStatusEntry is a region-wide status record for any instance,
// independent of group membership.
type FleetStatusEntry struct {
	InstanceID string
	State      string
	LaunchTime time.Time
}
