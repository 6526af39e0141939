package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/laporte-eng/jobnav/internal/core"
	"github.com/laporte-eng/jobnav/internal/integration"
	"github.com/laporte-eng/jobnav/internal/observability"
	"github.com/laporte-eng/jobnav/pkg/models"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const (
	testProjects = "/share/PROJECTS FOLDER"
	testPictures = "/share/pictures"
	testModels   = "/share/cad models"
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
}

func (m *memEventLog) Write(e observability.Event) error {
	m.events = append(m.events, e)
	return nil
}

func (m *memEventLog) Read(filter observability.EventFilter) ([]observability.Event, error) {
	var out []observability.Event
	for _, e := range m.events {
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.Level != "" && e.Level != filter.Level {
			continue
		}
		if filter.Since != nil && e.Time.Before(*filter.Since) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memEventLog) Close() error { return nil }

type testServices struct {
	fs     afero.Fs
	opener *fakeOpener
	events *memEventLog
	notes  *[]observability.Notification
}

// setupServices installs resolver, launcher and config globals backed by an
// in-memory share, restoring the previous values when the test ends.
func setupServices(t *testing.T) testServices {
	t.Helper()

	origResolver, origLauncher, origFS := Resolver, Launcher, FS
	origConfig, origConfigMgr, origEventLog := Config, ConfigMgr, EventLog
	t.Cleanup(func() {
		Resolver, Launcher, FS = origResolver, origLauncher, origFS
		Config, ConfigMgr, EventLog = origConfig, origConfigMgr, origEventLog
	})

	fsys := afero.NewMemMapFs()
	for _, dir := range []string{
		filepath.Join(testProjects, "9000-9999"),
		filepath.Join(testProjects, "130000-130499", "130100"),
		filepath.Join(testProjects, "130500-130999", "130550", "Drafting", "Issued Prints"),
		filepath.Join(testPictures, "130500-999", "130550"),
		testModels,
	} {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := afero.WriteFile(fsys, filepath.Join(testModels, "130550-STEM-MFG-00.stp"), []byte("ISO-10303-21;"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := core.DefaultGlobalConfig(t.TempDir())
	cfg.Roots = models.RootConfig{
		ProjectsFolder: testProjects,
		Pictures:       testPictures,
		QCModels:       testModels,
	}

	var notes []observability.Notification
	notifier := observability.NotifierFunc(func(n observability.Notification) error {
		notes = append(notes, n)
		return nil
	})
	opener := &fakeOpener{}
	events := &memEventLog{}

	FS = fsys
	Config = cfg
	ConfigMgr = core.NewConfigurationManager(t.TempDir())
	Resolver = core.NewPathResolver(fsys, cfg.Roots)
	Launcher = integration.NewLauncher(Resolver, opener, notifier, integration.WithEventLog(events))
	EventLog = events

	return testServices{fs: fsys, opener: opener, events: events, notes: &notes}
}

// runCmd runs cmd's RunE with output captured.
func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })
	err := cmd.RunE(cmd, args)
	return out.String(), err
}

// setFlag sets a flag for the duration of the test.
func setFlag(t *testing.T, cmd *cobra.Command, name, value string) {
	t.Helper()
	f := cmd.Flags().Lookup(name)
	if f == nil {
		t.Fatalf("flag %s not defined on %s", name, cmd.Name())
	}
	orig := f.Value.String()
	if err := cmd.Flags().Set(name, value); err != nil {
		t.Fatalf("setting --%s: %v", name, err)
	}
	t.Cleanup(func() { _ = cmd.Flags().Set(name, orig) })
}
