package integration

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/laporte-eng/jobnav/internal/core"
	"github.com/laporte-eng/jobnav/internal/observability"
	"github.com/laporte-eng/jobnav/pkg/models"
	"github.com/spf13/afero"
)

const (
	launchProjects = "/share/PROJECTS FOLDER"
	launchPictures = "/share/pictures"
	launchModels   = "/share/cad models"
)

type fakeOpener struct {
	opened []string
	err    error
}

func (f *fakeOpener) Open(path string) error {
	f.opened = append(f.opened, path)
	return f.err
}

type memEventLog struct {
	events []observability.Event
	err    error
}

func (m *memEventLog) Write(e observability.Event) error {
	m.events = append(m.events, e)
	return m.err
}

func (m *memEventLog) Read(observability.EventFilter) ([]observability.Event, error) {
	return m.events, nil
}

func (m *memEventLog) Close() error { return nil }

type launcherFixture struct {
	launcher *Launcher
	opener   *fakeOpener
	events   *memEventLog
	notes    *[]observability.Notification
}

func newLauncherFixture(t *testing.T, openErr error) launcherFixture {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, dir := range []string{
		filepath.Join(launchProjects, "130500-130999", "130550"),
		filepath.Join(launchPictures, "130500-999", "130550"),
		launchModels,
	} {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	resolver := core.NewPathResolver(fsys, models.RootConfig{
		ProjectsFolder: launchProjects,
		Pictures:       launchPictures,
		QCModels:       launchModels,
	})

	var notes []observability.Notification
	notifier := observability.NotifierFunc(func(n observability.Notification) error {
		notes = append(notes, n)
		return nil
	})
	opener := &fakeOpener{err: openErr}
	events := &memEventLog{}
	return launcherFixture{
		launcher: NewLauncher(resolver, opener, notifier, WithEventLog(events)),
		opener:   opener,
		events:   events,
		notes:    &notes,
	}
}

func TestLauncher_OpenResolvesAndOpens(t *testing.T) {
	f := newLauncherFixture(t, nil)

	path, ok := f.launcher.Open(models.TargetJob, "130550", "")
	if !ok {
		t.Fatal("expected open to succeed")
	}
	want := filepath.Join(launchProjects, "130500-130999", "130550")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if len(f.opener.opened) != 1 || f.opener.opened[0] != want {
		t.Errorf("opener calls = %v", f.opener.opened)
	}
	if len(*f.notes) != 0 {
		t.Errorf("no notification expected, got %+v", *f.notes)
	}

	if len(f.events.events) != 2 {
		t.Fatalf("expected resolve + open events, got %+v", f.events.events)
	}
	if f.events.events[0].Type != observability.EventResolveOK || f.events.events[1].Type != observability.EventOpenOK {
		t.Errorf("event types = %s, %s", f.events.events[0].Type, f.events.events[1].Type)
	}
}

func TestLauncher_ResolutionFailureNotifies(t *testing.T) {
	f := newLauncherFixture(t, nil)

	path, ok := f.launcher.Open(models.TargetPictures, "912362", "")
	if ok || path != "" {
		t.Fatalf("expected failure, got %q, %v", path, ok)
	}
	if len(f.opener.opened) != 0 {
		t.Error("opener must not run when resolution fails")
	}
	if len(*f.notes) != 1 {
		t.Fatalf("expected one notification, got %d", len(*f.notes))
	}
	n := (*f.notes)[0]
	if n.Kind != string(models.KindRangeRootNotFound) {
		t.Errorf("notification kind = %q", n.Kind)
	}
	if n.Time.IsZero() {
		t.Error("notification time should be set")
	}
	if len(f.events.events) != 1 || f.events.events[0].Type != observability.EventResolveFailed {
		t.Errorf("events = %+v", f.events.events)
	}
	if f.events.events[0].Data["kind"] != string(models.KindRangeRootNotFound) {
		t.Errorf("event data = %v", f.events.events[0].Data)
	}
}

func TestLauncher_OpenPathFailureNotifies(t *testing.T) {
	f := newLauncherFixture(t, &models.PathError{Kind: models.KindOpenFailed, Input: "/share/x", Err: errors.New("exit status 1")})

	if f.launcher.OpenPath("/share/x") {
		t.Fatal("expected OpenPath to report failure")
	}
	if len(*f.notes) != 1 || (*f.notes)[0].Kind != string(models.KindOpenFailed) {
		t.Fatalf("notifications = %+v", *f.notes)
	}
	if len(f.events.events) != 1 || f.events.events[0].Type != observability.EventOpenFailed {
		t.Errorf("events = %+v", f.events.events)
	}
}

func TestLauncher_SwallowsNotifierAndEventErrors(t *testing.T) {
	fsys := afero.NewMemMapFs()
	resolver := core.NewPathResolver(fsys, models.RootConfig{ProjectsFolder: launchProjects})
	failing := observability.NotifierFunc(func(observability.Notification) error {
		return errors.New("dialog closed")
	})
	events := &memEventLog{err: errors.New("disk full")}
	l := NewLauncher(resolver, &fakeOpener{err: errors.New("boom")}, failing, WithEventLog(events))

	if _, ok := l.Open(models.TargetJob, "130550", ""); ok {
		t.Fatal("expected failure")
	}
	if l.OpenPath("/share/x") {
		t.Fatal("expected failure")
	}
}

func TestLauncher_NilNotifierAndNoEventLog(t *testing.T) {
	resolver := core.NewPathResolver(afero.NewMemMapFs(), models.RootConfig{ProjectsFolder: launchProjects})
	l := NewLauncher(resolver, &fakeOpener{}, nil)

	if _, ok := l.Open(models.TargetJob, "no digits", ""); ok {
		t.Fatal("expected failure")
	}
	if !l.OpenPath("/anything") {
		t.Error("fake opener succeeds, OpenPath should too")
	}
}

func TestLauncher_ResolveDoesNotNotify(t *testing.T) {
	f := newLauncherFixture(t, nil)

	_, err := f.launcher.Resolve(models.TargetModel, "999999-X.stp", "")
	if !errors.Is(err, models.ErrDestinationNotFound) {
		t.Fatalf("expected destination_not_found, got %v", err)
	}
	if len(*f.notes) != 0 {
		t.Error("Resolve must leave reporting to the caller")
	}

	path, err := f.launcher.Resolve(models.TargetQC, "130550", models.DeptBlading)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "QC Reports" {
		t.Errorf("path = %q", path)
	}
	last := f.events.events[len(f.events.events)-1]
	if last.Data["dept"] != "blading" {
		t.Errorf("event should record the department, got %v", last.Data)
	}
}

func TestLauncher_WithNotifierRedirectsFailures(t *testing.T) {
	f := newLauncherFixture(t, nil)

	var redirected []observability.Notification
	l := f.launcher.WithNotifier(observability.NotifierFunc(func(n observability.Notification) error {
		redirected = append(redirected, n)
		return nil
	}))

	if _, ok := l.Open(models.TargetJob, "912362", ""); ok {
		t.Fatal("expected failure")
	}
	if len(redirected) != 1 {
		t.Errorf("expected redirected notification, got %d", len(redirected))
	}
	if len(*f.notes) != 0 {
		t.Error("original notifier should not be called")
	}
	if len(f.events.events) != 1 {
		t.Error("copy should keep the event log")
	}
}

func TestLauncher_ReportNotifiesWithKind(t *testing.T) {
	f := newLauncherFixture(t, nil)

	_, err := f.launcher.Resolve(models.TargetJob, "912362", "")
	if err == nil {
		t.Fatal("expected resolution error")
	}
	f.launcher.Report("Could not find job", err)

	if len(*f.notes) != 1 {
		t.Fatalf("expected one notification, got %d", len(*f.notes))
	}
	n := (*f.notes)[0]
	if n.Title != "Could not find job" || n.Kind != string(models.KindRangeRootNotFound) {
		t.Errorf("notification = %+v", n)
	}
}
