package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/cta/foundation/core/error"
	"github.com/msto63/cta/pkg/cta"
	"github.com/msto63/cta/pkg/tcllist"
)

// call is one recorded engine call
type call struct {
	op    string
	args  []string
	attrs cta.Attrs
}

type fakeEngine struct {
	calls  []call
	reply  string
	dict   *tcllist.Dict
	failOn string
}

func (f *fakeEngine) record(op string, attrs []cta.Attr, args ...string) error {
	f.calls = append(f.calls, call{op: op, args: args, attrs: attrs})
	if op == f.failOn {
		return mdwerror.New("engine rejected " + op).WithCode(mdwerror.CodeEngine)
	}
	return nil
}

func (f *fakeEngine) Config(ctx context.Context, h string, attrs ...cta.Attr) (string, error) {
	return f.reply, f.record("config", attrs, h)
}

func (f *fakeEngine) Get(ctx context.Context, h string, names ...string) (*cta.GetResult, error) {
	if err := f.record("get", nil, append([]string{h}, names...)...); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return &cta.GetResult{Raw: tcllist.Encode(f.dict), Attrs: f.dict}, nil
	}
	return &cta.GetResult{Raw: f.reply}, nil
}

func (f *fakeEngine) Create(ctx context.Context, typ, under string, attrs ...cta.Attr) (string, error) {
	return f.reply, f.record("create", attrs, typ, under)
}

func (f *fakeEngine) Delete(ctx context.Context, h string) (string, error) {
	return "", f.record("delete", nil, h)
}

func (f *fakeEngine) Connect(ctx context.Context, ip string) (string, error) {
	return "", f.record("connect", nil, ip)
}

func (f *fakeEngine) Disconnect(ctx context.Context, ip string) (string, error) {
	return "", f.record("disconnect", nil, ip)
}

func (f *fakeEngine) Reserve(ctx context.Context, loc string) (string, error) {
	return "", f.record("reserve", nil, loc)
}

func (f *fakeEngine) Release(ctx context.Context, loc string) (string, error) {
	return "", f.record("release", nil, loc)
}

func (f *fakeEngine) Perform(ctx context.Context, cmd string, attrs ...cta.Attr) (*tcllist.Dict, error) {
	if err := f.record("perform", attrs, cmd); err != nil {
		return nil, err
	}
	return f.dict, nil
}

func newTestShell(engine *fakeEngine) (*Shell, *bytes.Buffer) {
	var out bytes.Buffer
	return New(engine, Options{Out: &out}), &out
}

func TestShell_CreateAndReuseHandle(t *testing.T) {
	engine := &fakeEngine{reply: "port1"}
	sh, out := newTestShell(engine)
	ctx := context.Background()

	require.NoError(t, sh.Execute(ctx, "$p = create port project1 location=//10.0.0.1/1/1"))
	assert.Equal(t, "port1", sh.Vars()["p"])
	assert.Equal(t, "port1\n", out.String())

	engine.reply = ""
	require.NoError(t, sh.Execute(ctx, `config $p name="Port of ${p}" filter={a b} link=[stc::get port1 -parent]`))

	require.Len(t, engine.calls, 2)
	assert.Equal(t, []string{"port", "project1"}, engine.calls[0].args)
	assert.Equal(t, "//10.0.0.1/1/1", engine.calls[0].attrs[0].Value.Text())

	cfg := engine.calls[1]
	assert.Equal(t, []string{"port1"}, cfg.args)
	require.Len(t, cfg.attrs, 3)
	assert.Equal(t, "Port of port1", cfg.attrs[0].Value.Text())
	assert.Equal(t, cta.KindString, cfg.attrs[1].Value.Kind())
	assert.Equal(t, "a b", cfg.attrs[1].Value.Text())
	assert.Equal(t, cta.KindCommand, cfg.attrs[2].Value.Kind())
	assert.Equal(t, "[stc::get port1 -parent]", cfg.attrs[2].Value.Text())
}

func TestShell_CreateWithoutUnder(t *testing.T) {
	engine := &fakeEngine{reply: "project1"}
	sh, _ := newTestShell(engine)

	require.NoError(t, sh.Execute(context.Background(), "create project"))
	assert.Equal(t, []string{"project", ""}, engine.calls[0].args)
}

func TestShell_GetDecoded(t *testing.T) {
	dict, err := tcllist.Decode("-name {Port 1} -mtu 1500")
	require.NoError(t, err)

	engine := &fakeEngine{dict: dict, reply: "{Port 1}"}
	sh, out := newTestShell(engine)
	ctx := context.Background()

	require.NoError(t, sh.Execute(ctx, "$port = get port1"))
	assert.Contains(t, out.String(), "Port 1")
	assert.Contains(t, out.String(), "1500")
	assert.Equal(t, "1500", sh.Vars()["port.mtu"])

	out.Reset()
	require.NoError(t, sh.Execute(ctx, "get port1 name"))
	assert.Equal(t, "{Port 1}\n", out.String())
	assert.Equal(t, []string{"port1", "name"}, engine.calls[1].args)
}

func TestShell_SimpleVerbs(t *testing.T) {
	engine := &fakeEngine{}
	sh, _ := newTestShell(engine)
	ctx := context.Background()

	for _, line := range []string{
		"connect 10.0.0.1",
		"reserve //10.0.0.1/1/1",
		"release //10.0.0.1/1/1",
		"disconnect 10.0.0.1",
		"delete port1",
	} {
		require.NoError(t, sh.Execute(ctx, line), line)
	}

	var ops []string
	for _, c := range engine.calls {
		ops = append(ops, c.op)
	}
	assert.Equal(t, []string{"connect", "reserve", "release", "disconnect", "delete"}, ops)
}

func TestShell_Perform(t *testing.T) {
	dict, err := tcllist.Decode("-State COMPLETED")
	require.NoError(t, err)

	engine := &fakeEngine{dict: dict}
	sh, out := newTestShell(engine)

	require.NoError(t, sh.Execute(context.Background(), "$r = perform SaveAsXml filename={C:/tmp/a b.xml}"))
	assert.Contains(t, out.String(), "COMPLETED")
	assert.Equal(t, "COMPLETED", sh.Vars()["r.State"])
	assert.Equal(t, "C:/tmp/a b.xml", engine.calls[0].attrs[0].Value.Text())
}

func TestShell_Variables(t *testing.T) {
	sh, out := newTestShell(&fakeEngine{})
	ctx := context.Background()

	require.NoError(t, sh.Execute(ctx, "set chassis 10.0.0.1"))
	require.NoError(t, sh.Execute(ctx, "set loc //${chassis}/1/1"))
	require.NoError(t, sh.Execute(ctx, "set loc"))
	assert.Equal(t, "//10.0.0.1/1/1\n", out.String())

	out.Reset()
	require.NoError(t, sh.Execute(ctx, "vars"))
	assert.Equal(t, "chassis = 10.0.0.1\nloc = //10.0.0.1/1/1\n", out.String())
}

func TestShell_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		code mdwerror.Code
	}{
		{"unknown command", "frobnicate x", mdwerror.CodeInvalidArgument},
		{"syntax", "get {port1", mdwerror.CodeInvalidArgument},
		{"missing arg", "delete", mdwerror.CodeInvalidArgument},
		{"too many args", "create port project1 extra", mdwerror.CodeInvalidArgument},
		{"attrs not allowed", "reserve //1.1.1.1/1/1 force=true", mdwerror.CodeInvalidArgument},
		{"undefined variable", "delete $nope", mdwerror.CodeInvalidArgument},
		{"undefined reference", `delete "${nope}"`, mdwerror.CodeScript},
		{"engine", "perform Bogus", mdwerror.CodeEngine},
		{"unset variable", "set nope", mdwerror.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh, _ := newTestShell(&fakeEngine{failOn: "perform"})
			err := sh.Execute(context.Background(), tt.line)
			require.Error(t, err)
			assert.True(t, mdwerror.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestShell_HelpExitAndComments(t *testing.T) {
	sh, out := newTestShell(&fakeEngine{})
	ctx := context.Background()

	require.NoError(t, sh.Execute(ctx, "# comment"))
	require.NoError(t, sh.Execute(ctx, ""))
	assert.Empty(t, out.String())

	require.NoError(t, sh.Execute(ctx, "help"))
	assert.True(t, strings.Contains(out.String(), "reserve <//chassis/slot/port>"))

	assert.True(t, errors.Is(sh.Execute(ctx, "exit"), ErrExit))
	assert.True(t, errors.Is(sh.Execute(ctx, "QUIT"), ErrExit))
}
