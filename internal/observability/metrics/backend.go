package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/cryptlocker/cryptlocker-ui-api/internal/observability/errors"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// BackendRequest captures one round trip to a wallet backend.
type BackendRequest struct {
	Service   string
	Operation string
	Status    int
	Duration  time.Duration
	Err       error
}

// EmitBackendRequest emits a request count and a duration timing for one backend call.
func EmitBackendRequest(sink statsd.Sink, in BackendRequest) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"service":      in.Service,
		"operation":    in.Operation,
		"status_class": statusClass(in.Status),
		"result":       ResultSuccess,
	}
	if in.Err != nil {
		tags["result"] = ResultError
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("backend.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("backend.duration", in.Duration, CloneTags(tags))
	}
}

// CacheOp captures an opportunistic local cache operation.
type CacheOp struct {
	Operation string
	Attempts  int
	Err       error
}

// EmitCacheOp counts a cache sync outcome. Failures are swallowed by callers,
// so this is the only place they become visible besides logs.
func EmitCacheOp(sink statsd.Sink, in CacheOp) {
	if sink == nil {
		return
	}
	tags := map[string]string{"operation": in.Operation, "result": ResultSuccess}
	if in.Err != nil {
		tags["result"] = ResultError
		tags["error_class"] = obserrors.Classify(in.Err)
	}
	sink.Count("cache.op", 1, tags)
	if in.Attempts > 1 {
		sink.Count("cache.retry", int64(in.Attempts-1), CloneTags(tags))
	}
}

// EmitReaperPrune records rows removed by one reaper step.
func EmitReaperPrune(sink statsd.Sink, step string, deleted int64, d time.Duration) {
	if sink == nil {
		return
	}
	tags := map[string]string{"step": step}
	sink.Count("reaper.deleted", deleted, tags)
	sink.Timing("reaper.duration", d, CloneTags(tags))
}

func statusClass(status int) string {
	if status <= 0 {
		return "none"
	}
	return strconv.Itoa(status/100) + "xx"
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
