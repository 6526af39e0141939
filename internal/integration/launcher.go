package integration

import (
	"time"

	"github.com/laporte-eng/jobnav/internal/core"
	"github.com/laporte-eng/jobnav/internal/observability"
	"github.com/laporte-eng/jobnav/pkg/models"
	"github.com/rs/zerolog"
)

// Launcher is the boundary between user-facing front ends and the resolver.
// It resolves targets, hands paths to the Opener and turns every failure
// into a Notification. Errors never escape Open or OpenPath.
type Launcher struct {
	resolver core.PathResolver
	opener   Opener
	notifier observability.Notifier
	events   observability.EventLog
	logger   zerolog.Logger
	now      func() time.Time
}

// LauncherOption configures optional Launcher collaborators.
type LauncherOption func(*Launcher)

// WithEventLog records every resolution and open attempt in events.
func WithEventLog(events observability.EventLog) LauncherOption {
	return func(l *Launcher) { l.events = events }
}

// WithLauncherLogger sets the diagnostic logger.
func WithLauncherLogger(logger zerolog.Logger) LauncherOption {
	return func(l *Launcher) { l.logger = logger }
}

// NewLauncher creates a Launcher. A nil notifier drops notifications.
func NewLauncher(resolver core.PathResolver, opener Opener, notifier observability.Notifier, opts ...LauncherOption) *Launcher {
	if notifier == nil {
		notifier = observability.MultiNotifier{}
	}
	l := &Launcher{
		resolver: resolver,
		opener:   opener,
		notifier: notifier,
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithNotifier returns a copy of l that reports failures to n. A nil n
// drops notifications.
func (l *Launcher) WithNotifier(n observability.Notifier) *Launcher {
	if n == nil {
		n = observability.MultiNotifier{}
	}
	c := *l
	c.notifier = n
	return &c
}

// Resolve resolves a target without opening it. The attempt is recorded in
// the event log but not notified; callers decide how to report the error.
func (l *Launcher) Resolve(target models.Target, arg string, dept models.Department) (string, error) {
	path, err := l.resolver.Resolve(target, arg, dept)
	data := map[string]any{"target": string(target), "arg": arg}
	if dept != "" {
		data["dept"] = string(dept)
	}
	if err != nil {
		data["kind"] = string(models.KindOf(err))
		l.record("warn", observability.EventResolveFailed, err.Error(), data)
		return "", err
	}
	data["path"] = path
	l.record("info", observability.EventResolveOK, "resolved "+string(target), data)
	return path, nil
}

// Open resolves a target and opens it. It returns the resolved path (empty
// when resolution failed) and whether the open succeeded.
func (l *Launcher) Open(target models.Target, arg string, dept models.Department) (string, bool) {
	path, err := l.Resolve(target, arg, dept)
	if err != nil {
		l.Report("Could not find "+string(target), err)
		return "", false
	}
	return path, l.OpenPath(path)
}

// Report notifies the user of err under title. Front ends that call Resolve
// directly use it to report failures the same way Open does.
func (l *Launcher) Report(title string, err error) {
	l.notify(title, err)
}

// OpenPath opens path with the system handler. On failure it notifies the
// user and returns false.
func (l *Launcher) OpenPath(path string) bool {
	if err := l.opener.Open(path); err != nil {
		l.record("error", observability.EventOpenFailed, err.Error(), map[string]any{
			"path": path,
			"kind": string(models.KindOf(err)),
		})
		l.notify("Could not open path", err)
		return false
	}
	l.record("info", observability.EventOpenOK, "opened "+path, map[string]any{"path": path})
	return true
}

func (l *Launcher) notify(title string, err error) {
	n := observability.Notification{
		Title:   title,
		Message: err.Error(),
		Kind:    string(models.KindOf(err)),
		Time:    l.now(),
	}
	if nerr := l.notifier.Notify(n); nerr != nil {
		l.logger.Warn().Err(nerr).Msg("notification failed")
	}
}

func (l *Launcher) record(level, eventType, message string, data map[string]any) {
	if l.events == nil {
		return
	}
	err := l.events.Write(observability.Event{
		Time:    l.now().UTC(),
		Level:   level,
		Type:    eventType,
		Message: message,
		Data:    data,
	})
	if err != nil {
		l.logger.Warn().Err(err).Str("type", eventType).Msg("event log write failed")
	}
}
