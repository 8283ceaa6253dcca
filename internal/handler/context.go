package handler

type ContextKey string

var (
	MinistryCtx   ContextKey = "ministry"
	ServiceDayCtx ContextKey = "serviceDay"
	ScheduleCtx   ContextKey = "schedule"
)
