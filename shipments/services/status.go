package services

import "time"

// Arrival status labels, in the order the operations team walks them.
// Transitions are operator-chosen, not enforced: any label may be set from any
// other. 未到货 is the exception state and triggers a Feishu alert.
const (
	StatusCoordinating    = "公司统筹中"
	StatusFactoryAccepted = "钢厂已接单"
	StatusInTransit       = "运输装货中"
	StatusArrived         = "已到货"
	StatusNotArrived      = "未到货"
)

// StatusOptions is the fixed set the dashboard offers.
var StatusOptions = []string{
	StatusCoordinating,
	StatusFactoryAccepted,
	StatusInTransit,
	StatusArrived,
	StatusNotArrived,
}

// ArrivalGracePeriod is how long after the planned delivery time an
// un-annotated shipment is presumed to have arrived.
const ArrivalGracePeriod = 3 * 24 * time.Hour

// OverviewProject is the head-office pseudo project that sees every row.
const OverviewProject = "中铁物贸成都分公司"

// IsValidStatus reports whether s is one of the fixed status labels.
func IsValidStatus(s string) bool {
	for _, opt := range StatusOptions {
		if s == opt {
			return true
		}
	}
	return false
}

// FallbackStatus synthesizes an effective status for a record that has no
// overlay row yet: past the grace period it is presumed arrived, otherwise it
// is still being coordinated. A record with no delivery time at all stays in
// coordination until someone annotates it.
func FallbackStatus(deliveryTime *time.Time, now time.Time) string {
	if deliveryTime == nil {
		return StatusCoordinating
	}
	if now.Sub(*deliveryTime) > ArrivalGracePeriod {
		return StatusArrived
	}
	return StatusCoordinating
}
