package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) Create(ctx context.Context) error               { return f.record("create", nil) }
func (f *fakeExec) List(ctx context.Context) error                 { return f.record("list", nil) }
func (f *fakeExec) Check(ctx context.Context, args []string) error { return f.record("check", args) }
func (f *fakeExec) Login(ctx context.Context, args []string) error { return f.record("login", args) }
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	return f.record("delete", args)
}
func (f *fakeExec) Ping(ctx context.Context) error { return f.record("ping", nil) }

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			parts = append(parts, v.(string))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	printed := capturePrints(t)

	input := strings.Join([]string{
		"help",
		"",
		"create",
		"l",
		"list",
		"check alice",
		"login bob jwt",
		"delete carol",
		"ping",
		"foobar",
		"exit",
		"create",
	}, "\n") + "\n"

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "(online)" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"create", "list", "list", "check", "login", "delete", "ping"}, f.calls)
	assert.Equal(t, []string{"alice"}, f.args[3])
	assert.Equal(t, []string{"bob", "jwt"}, f.args[4])
	assert.Equal(t, []string{"carol"}, f.args[5])

	assert.Contains(t, *printed, helpText)
	assert.Contains(t, *printed, "Unknown command: foobar")
	assert.Contains(t, *printed, "ak(online)> ")
	assert.Equal(t, "Bye!", (*printed)[len(*printed)-1])
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrints(t)

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewReader(strings.NewReader("ping")))

	assert.Equal(t, []string{"ping"}, f.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrints(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeExec{}
	runREPL(ctx, f, func() string { return "" }, bufio.NewReader(strings.NewReader("create\n")))

	assert.Empty(t, f.calls)
}
