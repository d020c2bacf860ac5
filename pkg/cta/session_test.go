package cta

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/cta/foundation/core/error"
	"github.com/msto63/cta/pkg/core/logging"
	"github.com/msto63/cta/pkg/tcllist"
)

type mockInterpreter struct {
	mock.Mock
}

func (m *mockInterpreter) Eval(ctx context.Context, script string) (string, error) {
	args := m.Called(script)
	return args.String(0), args.Error(1)
}

func (m *mockInterpreter) Close() error {
	return m.Called().Error(0)
}

// expectBootstrap registers the startup conversation of a session
func expectBootstrap(m *mockInterpreter, apiPath string) {
	m.On("Eval", "info patchlevel").Return("8.6.13", nil).Once()
	if apiPath != "" {
		m.On("Eval", "lappend ::auto_path "+tcllist.Quote(apiPath)).Return("", nil).Once()
	}
	m.On("Eval", "set ::auto_path").Return("/usr/lib/tcl8.6", nil).Once()
	m.On("Eval", "package require SpirentTestCenterConformance").Return("4.90", nil).Once()
}

func openTestSession(t *testing.T, m *mockInterpreter, opts Options) *Session {
	t.Helper()
	if opts.LogPath == "" {
		opts.LogPath = t.TempDir()
	}
	opts.Interpreter = m
	expectBootstrap(m, opts.APIPath)
	m.On("Close").Return(nil).Maybe()

	s, err := Open(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func readLog(t *testing.T, s *Session) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(s.LogDir(), logging.LogFileName))
	require.NoError(t, err)
	return string(data)
}

func TestOpenBanner(t *testing.T) {
	apiPath := t.TempDir()
	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{APIPath: apiPath, LogLevel: "INFO"})

	assert.NotEmpty(t, s.ID())
	log := readLog(t, s)
	for _, want := range []string{
		"INFO OS Type: ",
		"INFO API Path: " + apiPath,
		"INFO UserID: ",
		"INFO Log Level: INFO",
		"INFO Current Path: ",
		"INFO Log Path: " + s.LogDir(),
		"INFO Tcl Version: 8.6.13",
		"INFO Tcl Auto Path: /usr/lib/tcl8.6",
		"INFO SpirentTestCenterConformance Version: 4.90",
	} {
		assert.Contains(t, log, want)
	}
	m.AssertExpectations(t)
}

func TestOpenLogDirFromEnvironment(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "from-env")
	m := &mockInterpreter{}
	expectBootstrap(m, "")
	m.On("Close").Return(nil)

	s, err := Open(context.Background(), Options{
		Interpreter: m,
		Getenv: func(key string) string {
			if key == logging.EnvLogDir {
				return dir
			}
			return ""
		},
	})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, dir, s.LogDir())
	assert.FileExists(t, filepath.Join(dir, logging.LogFileName))
}

func TestOpenSingleSession(t *testing.T) {
	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{})

	_, err := Open(context.Background(), Options{LogPath: t.TempDir(), Interpreter: &mockInterpreter{}})
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeSessionActive))

	require.NoError(t, s.Close())

	m2 := &mockInterpreter{}
	s2 := openTestSession(t, m2, Options{})
	assert.NotEqual(t, s.ID(), s2.ID())
}

func TestOpenMissingAPIPath(t *testing.T) {
	m := &mockInterpreter{}
	m.On("Close").Return(nil).Maybe()
	logDir := t.TempDir()

	_, err := Open(context.Background(), Options{
		APIPath:     filepath.Join(t.TempDir(), "missing"),
		LogPath:     logDir,
		Interpreter: m,
	})
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeBootstrap))
	m.AssertNotCalled(t, "Eval", mock.Anything)

	data, _ := os.ReadFile(filepath.Join(logDir, logging.LogFileName))
	assert.Contains(t, string(data), "CRITICAL engine installation not found")

	// the slot is free again
	s := openTestSession(t, &mockInterpreter{}, Options{})
	require.NoError(t, s.Close())
}

func TestOpenPackageLoadFailure(t *testing.T) {
	m := &mockInterpreter{}
	m.On("Eval", "info patchlevel").Return("8.6.13", nil)
	m.On("Eval", "set ::auto_path").Return("", nil)
	m.On("Eval", "package require SpirentTestCenterConformance").
		Return("", errors.New("can't find package SpirentTestCenterConformance"))
	m.On("Close").Return(nil).Once()

	_, err := Open(context.Background(), Options{LogPath: t.TempDir(), Interpreter: m})
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeBootstrap))
	assert.Contains(t, err.Error(), "can't find package SpirentTestCenterConformance")
	m.AssertExpectations(t)

	s := openTestSession(t, &mockInterpreter{}, Options{})
	require.NoError(t, s.Close())
}

func TestConfig(t *testing.T) {
	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{})
	m.On("Eval", "stc::config userprofile1 -dnsRetries {10} -Name {my profile}").Return("", nil).Once()

	out, err := s.Config(context.Background(), "userprofile1", A("dnsRetries", 10), A("Name", "my profile"))
	require.NoError(t, err)
	assert.Equal(t, "", out)

	log := readLog(t, s)
	assert.Contains(t, log, `DEBUG config(objecthandle="userprofile1", dnsRetries="10", Name="my profile")`)
	assert.Contains(t, log, "DEBUG Tcl command: stc::config userprofile1 -dnsRetries {10} -Name {my profile}")
	m.AssertExpectations(t)
}

func TestGetDecodesOnlyWithoutNames(t *testing.T) {
	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{})
	ctx := context.Background()

	m.On("Eval", "stc::get port1").Return("-Name {Port 1} -Online true -Speed 1000", nil).Once()
	m.On("Eval", "stc::get port1 -Name -Speed").Return("{Port 1} 1000", nil).Once()

	all, err := s.Get(ctx, "port1")
	require.NoError(t, err)
	require.True(t, all.Decoded())
	assert.Equal(t, []string{"Name", "Online", "Speed"}, all.Attrs.Keys())
	speed, _ := all.Attrs.Get("Speed")
	assert.Equal(t, tcllist.KindInteger, speed.Kind())

	some, err := s.Get(ctx, "port1", "Name", "Speed")
	require.NoError(t, err)
	assert.False(t, some.Decoded())
	assert.Equal(t, "{Port 1} 1000", some.Raw)

	assert.Contains(t, readLog(t, s), `get(objecthandle="port1", args="Name Speed")`)
	m.AssertExpectations(t)
}

func TestGetAllMalformed(t *testing.T) {
	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{})
	m.On("Eval", "stc::get port1").Return("-Name {unterminated", nil).Once()

	_, err := s.GetAll(context.Background(), "port1")
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeDecode))
}

func TestCreate(t *testing.T) {
	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{})
	ctx := context.Background()

	m.On("Eval", "stc::create project").Return("project1", nil).Once()
	m.On("Eval", "stc::create port -under project1 -Location {//10.1.1.1/1/1}").Return("port1\n", nil).Once()

	project, err := s.Create(ctx, "project", "")
	require.NoError(t, err)
	assert.Equal(t, "project1", project)

	port, err := s.Create(ctx, "port", project, A("Location", "//10.1.1.1/1/1"))
	require.NoError(t, err)
	assert.Equal(t, "port1", port)

	assert.Contains(t, readLog(t, s), `create(objecttype="port", under="project1", Location="//10.1.1.1/1/1")`)
	m.AssertExpectations(t)
}

func TestSimpleVerbs(t *testing.T) {
	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{})
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() (string, error)
		command string
		logged  string
	}{
		{"delete", func() (string, error) { return s.Delete(ctx, "port1") }, "stc::delete port1", `delete(handle="port1")`},
		{"connect", func() (string, error) { return s.Connect(ctx, "10.1.1.1") }, "stc::connect 10.1.1.1", `connect(ipAddress="10.1.1.1")`},
		{"disconnect", func() (string, error) { return s.Disconnect(ctx, "10.1.1.1") }, "stc::disconnect 10.1.1.1", `disconnect(ipAddress="10.1.1.1")`},
		{"reserve", func() (string, error) { return s.Reserve(ctx, "//10.1.1.1/1/1") }, "stc::reserve //10.1.1.1/1/1", `reserve(location="//10.1.1.1/1/1")`},
		{"release", func() (string, error) { return s.Release(ctx, "//10.1.1.1/1/1") }, "stc::release //10.1.1.1/1/1", `release(location="//10.1.1.1/1/1")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.On("Eval", tt.command).Return(tt.name+"-ok", nil).Once()
			out, err := tt.call()
			require.NoError(t, err)
			assert.Equal(t, tt.name+"-ok", out)
			assert.Contains(t, readLog(t, s), tt.logged)
		})
	}
	m.AssertExpectations(t)
}

func TestPerform(t *testing.T) {
	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{})
	m.On("Eval", "stc::perform GetTestCaseInfo -TestCase {tc 1}").
		Return("-State COMPLETED -Verdict PASSED -Count 003", nil).Once()

	out, err := s.Perform(context.Background(), "GetTestCaseInfo", A("TestCase", "tc 1"))
	require.NoError(t, err)
	assert.Equal(t, "PASSED", out.String("Verdict"))
	count, _ := out.Get("Count")
	n, _ := count.Int()
	assert.Equal(t, int64(3), n)
	assert.Contains(t, readLog(t, s), `perform(command="GetTestCaseInfo", TestCase="tc 1")`)
}

func TestEngineErrorUnchanged(t *testing.T) {
	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{})
	engineText := `invalid handle "port9": object not found`
	m.On("Eval", "stc::delete port9").
		Return("", mdwerror.New(engineText).WithCode(mdwerror.CodeEngine)).Once()

	_, err := s.Delete(context.Background(), "port9")
	require.Error(t, err)
	assert.Equal(t, engineText, err.Error())
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeEngine))
	assert.Contains(t, readLog(t, s), "ERROR "+engineText)
}

func TestInvalidArgumentNeverReachesEngine(t *testing.T) {
	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{})

	_, err := s.Config(context.Background(), "port1", A("bad name", 1))
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidArgument))
	m.AssertNotCalled(t, "Eval", mock.MatchedBy(func(s string) bool { return strings.HasPrefix(s, "stc::") }))
}

func TestClosedSession(t *testing.T) {
	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{})

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.True(t, s.Closed())

	_, err := s.Config(context.Background(), "project1", A("Name", "x"))
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeSessionClosed))
	m.AssertNumberOfCalls(t, "Close", 1)
}

func TestRecorder(t *testing.T) {
	var (
		mu      sync.Mutex
		records []Record
	)
	recorder := RecorderFunc(func(_ context.Context, rec Record) error {
		mu.Lock()
		records = append(records, rec)
		mu.Unlock()
		return nil
	})

	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{Recorder: recorder})
	m.On("Eval", "stc::config project1 -Name {x}").Return("", nil).Once()
	m.On("Eval", "stc::delete nope").Return("", errors.New("no such object")).Once()

	ctx := context.Background()
	_, _ = s.Config(ctx, "project1", A("Name", "x"))
	_, _ = s.Delete(ctx, "nope")

	require.Len(t, records, 2)
	assert.Equal(t, "config", records[0].Operation)
	assert.Equal(t, s.ID(), records[0].SessionID)
	assert.Equal(t, map[string]string{"Name": "x"}, records[0].Attrs)
	assert.False(t, records[0].Failed())
	assert.NotEmpty(t, records[0].ID)

	assert.True(t, records[1].Failed())
	assert.Equal(t, "stc::delete nope", records[1].Command)
}

func TestRecorderFailureIsNotFatal(t *testing.T) {
	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{Recorder: RecorderFunc(func(context.Context, Record) error {
		return errors.New("journal unavailable")
	})})
	m.On("Eval", "stc::delete port1").Return("", nil).Once()

	_, err := s.Delete(context.Background(), "port1")
	require.NoError(t, err)
	assert.Contains(t, readLog(t, s), "WARNING Failed to record command")
}

func TestLogLevelFiltersDebug(t *testing.T) {
	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{LogLevel: "ERROR"})
	m.On("Eval", "stc::delete port1").Return("", nil).Once()

	_, err := s.Delete(context.Background(), "port1")
	require.NoError(t, err)
	log := readLog(t, s)
	assert.NotContains(t, log, "delete(handle=")
	assert.NotContains(t, log, "OS Type")
}

func TestConcurrentCallsAreSerialized(t *testing.T) {
	m := &mockInterpreter{}
	s := openTestSession(t, m, Options{})
	m.On("Eval", mock.MatchedBy(func(s string) bool { return strings.HasPrefix(s, "stc::get") })).Return("-a 1", nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.GetAll(context.Background(), "obj1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	m.AssertNumberOfCalls(t, "Eval", 3+10)
}
