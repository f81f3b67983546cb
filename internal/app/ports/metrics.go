package ports

import "shiloassist/internal/domain/activity"

type AssistMetrics interface {
	RecordTick(inRegion bool)
	RecordSearch(found bool)
	RecordTransition(t activity.Transition)
}
