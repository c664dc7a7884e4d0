package recast

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LogCategory classifies a message emitted during a build.
type LogCategory int

// Log categories mirrored from the build context.
const (
	LogProgress LogCategory = 1 + iota
	LogWarning
	LogError
)

// TimerLabel identifies one of the named build stages tracked by a
// BuildContext.
type TimerLabel int

// Timer labels. BuildContours starts TimerBuildContours, its trace and
// simplify sub-timers, and TimerMergeContourHoles. TimerTotal,
// TimerBuildPolymesh and TimerMergePolymesh are started by nothing in this
// module; they keep their slots so a caller sharing one BuildContext across
// a wider pipeline gets consistent indices.
const (
	TimerTotal TimerLabel = iota
	TimerBuildContours
	TimerBuildContoursTrace
	TimerBuildContoursSimplify
	TimerMergeContourHoles
	TimerBuildPolymesh
	TimerMergePolymesh
	TimerMaxTimers
)

const maxMessages = 1000

// BuildContext accumulates log messages and per-stage timings across a
// single tile build. It carries no behaviour of its own beyond bookkeeping;
// callers wanting messages routed to a real logger read them back with
// Messages() once the build finishes.
type BuildContext struct {
	BuildID string

	startTime [TimerMaxTimers]time.Time
	accTime   [TimerMaxTimers]time.Duration

	messages    []string
	logEnabled  bool
	timeEnabled bool
}

// NewBuildContext returns a context with logging and timers either both
// enabled or both disabled, and a fresh correlation id for the build.
func NewBuildContext(enabled bool) *BuildContext {
	return &BuildContext{
		BuildID:     uuid.NewString(),
		logEnabled:  enabled,
		timeEnabled: enabled,
		messages:    make([]string, 0, 64),
	}
}

func (ctx *BuildContext) Progressf(format string, v ...interface{}) { ctx.log(LogProgress, format, v...) }
func (ctx *BuildContext) Warningf(format string, v ...interface{})  { ctx.log(LogWarning, format, v...) }
func (ctx *BuildContext) Errorf(format string, v ...interface{})    { ctx.log(LogError, format, v...) }

func (ctx *BuildContext) log(category LogCategory, format string, v ...interface{}) {
	if !ctx.logEnabled || len(ctx.messages) >= maxMessages {
		return
	}
	var prefix string
	switch category {
	case LogProgress:
		prefix = "PROG "
	case LogWarning:
		prefix = "WARN "
	case LogError:
		prefix = "ERR  "
	}
	ctx.messages = append(ctx.messages, prefix+fmt.Sprintf(format, v...))
}

// Messages returns every message logged so far, oldest first.
func (ctx *BuildContext) Messages() []string { return ctx.messages }

// StartTimer starts the named timer. A no-op when timers are disabled.
func (ctx *BuildContext) StartTimer(label TimerLabel) {
	if ctx.timeEnabled {
		ctx.startTime[label] = time.Now()
	}
}

// StopTimer accumulates the elapsed time since the matching StartTimer call.
func (ctx *BuildContext) StopTimer(label TimerLabel) {
	if ctx.timeEnabled {
		ctx.accTime[label] += time.Since(ctx.startTime[label])
	}
}

// AccumulatedTime returns the total time spent in the named stage, or zero
// if timers are disabled.
func (ctx *BuildContext) AccumulatedTime(label TimerLabel) time.Duration {
	if !ctx.timeEnabled {
		return 0
	}
	return ctx.accTime[label]
}
