package common

type ContextKey string

const (
	LatencyContextKey ContextKey = "start_time"
)
