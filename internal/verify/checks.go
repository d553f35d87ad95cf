package verify

import (
	"time"

	pkgtypes "github.com/vietdv277/asgcheck/pkg/types"
)

// Check names
const (
	CheckNameCapacity    = "capacity"
	CheckNameZoneSpread  = "zone-spread"
	CheckNameHomogeneity = "homogeneity"
)

// Result is the outcome of a single pass/fail check
type Result struct {
	Name    string
	Passed  bool
	Message string
}

// CheckCapacity passes when the desired capacity equals the number of instances
func CheckCapacity(s *pkgtypes.ScalingGroupSnapshot) Result {
	if s.DesiredCapacity != len(s.Instances) {
		return Result{CheckNameCapacity, false, "Desired capacity does not match the number of instances"}
	}
	return Result{CheckNameCapacity, true, "Desired capacity matches the number of instances"}
}

// CheckZoneSpread fails only when more than one instance shares a single
// availability zone
func CheckZoneSpread(instances []pkgtypes.InstanceRecord) Result {
	zones := make(map[string]struct{}, len(instances))
	for _, inst := range instances {
		zones[inst.AZ] = struct{}{}
	}

	if len(instances) > 1 && len(zones) == 1 {
		return Result{CheckNameZoneSpread, false, "Instances are not distributed across multiple availability zones"}
	}
	return Result{CheckNameZoneSpread, true, "Instances are distributed across multiple availability zones"}
}

// CheckHomogeneity passes when every instance has the same primary security
// group, image and VPC as the first one. A group without instances fails.
func CheckHomogeneity(instances []pkgtypes.InstanceRecord) Result {
	if len(instances) == 0 {
		return Result{CheckNameHomogeneity, false, "Security Group, Image ID, and VPC ID cannot be compared: group has no instances"}
	}

	ref := instances[0]
	for _, inst := range instances[1:] {
		if inst.PrimarySecurityGroup() != ref.PrimarySecurityGroup() ||
			inst.ImageID != ref.ImageID ||
			inst.VpcID != ref.VpcID {
			return Result{CheckNameHomogeneity, false, "Security Group, Image ID, or VPC ID mismatch"}
		}
	}
	return Result{CheckNameHomogeneity, true, "Security Group, Image ID, and VPC ID match for all instances"}
}

// Checks runs every pass/fail check in report order
func Checks(s *pkgtypes.ScalingGroupSnapshot) []Result {
	return []Result{
		CheckCapacity(s),
		CheckZoneSpread(s.Instances),
		CheckHomogeneity(s.Instances),
	}
}

// LongestUptime returns the instance with the earliest launch time. The
// first one wins on ties.
func LongestUptime(instances []pkgtypes.InstanceRecord) (pkgtypes.InstanceRecord, bool) {
	if len(instances) == 0 {
		return pkgtypes.InstanceRecord{}, false
	}

	oldest := instances[0]
	for _, inst := range instances[1:] {
		if inst.LaunchTime.Before(oldest.LaunchTime) {
			oldest = inst
		}
	}
	return oldest, true
}

// NextScheduledAction returns the action with the earliest start time, past
// ones included. The first one wins on ties.
func NextScheduledAction(actions []pkgtypes.ScheduledAction) (pkgtypes.ScheduledAction, bool) {
	if len(actions) == 0 {
		return pkgtypes.ScheduledAction{}, false
	}

	next := actions[0]
	for _, a := range actions[1:] {
		if a.StartTime.Before(next.StartTime) {
			next = a
		}
	}
	return next, true
}

// DailyCounts holds instance launches and terminations for one UTC day
type DailyCounts struct {
	Launched   int
	Terminated int
}

// CountToday counts entries launched on now's UTC calendar date, and those
// among them that are terminated
func CountToday(entries []pkgtypes.FleetStatusEntry, now time.Time) DailyCounts {
	var counts DailyCounts
	for _, e := range entries {
		if !sameUTCDate(e.LaunchTime, now) {
			continue
		}
		counts.Launched++
		if e.State == pkgtypes.StateTerminated {
			counts.Terminated++
		}
	}
	return counts
}

func sameUTCDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
