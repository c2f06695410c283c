// Package state defines shared state for the hwpxmd CLI collaborator. The
// conversion core never touches this package: it is single-call, stateless,
// and carries nothing across invocations (see the concurrency and resource
// model in SPEC_FULL.md §5).
package state

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type envKey struct{}

// LocalEnv keeps everything the CLI command needs in a single place, set up
// once in initializeAppContext and torn down in destroyAppContext.
type LocalEnv struct {
	Log *zap.Logger

	Overwrite bool
	Style     string

	start         time.Time
	restoreStdLog func()
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

// EnvFromContext recovers the LocalEnv installed by ContextWithEnv.
func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen: the root command always installs one
	panic("localenv not found in context")
}

// ContextWithEnv returns a context carrying a fresh LocalEnv.
func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

// Uptime reports how long this invocation has been running.
func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// RedirectStdLog routes the standard library's global logger through zap for
// the duration of the command, restored by RestoreStdLog.
func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

// RestoreStdLog undoes RedirectStdLog and flushes the logger.
func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
