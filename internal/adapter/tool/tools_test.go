package tool

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webcli/internal/application/port/output"
)

// fakeCommander records invocations and echoes them back.
type fakeCommander struct {
	calls []string
}

func (f *fakeCommander) record(format string, args ...any) (string, error) {
	call := fmt.Sprintf(format, args...)
	f.calls = append(f.calls, call)
	return call, nil
}

func (f *fakeCommander) Goto(_ context.Context, url string) (string, error) {
	return f.record("goto %s", url)
}
func (f *fakeCommander) Click(_ context.Context, id string) (string, error) {
	return f.record("click %s", id)
}
func (f *fakeCommander) Fill(_ context.Context, id, value string) (string, error) {
	return f.record("fill %s %s", id, value)
}
func (f *fakeCommander) SelectOption(_ context.Context, id, value string) (string, error) {
	return f.record("select %s %s", id, value)
}
func (f *fakeCommander) Scroll(_ context.Context, direction string) (string, error) {
	return f.record("scroll %s", direction)
}
func (f *fakeCommander) Back(_ context.Context) (string, error) {
	return f.record("back")
}
func (f *fakeCommander) Read(_ context.Context, maxLength int) (string, error) {
	return f.record("read %d", maxLength)
}
func (f *fakeCommander) Search(_ context.Context, query, engine string) (string, error) {
	return f.record("search %s %s", query, engine)
}
func (f *fakeCommander) State() (string, error) { return f.record("state") }
func (f *fakeCommander) Render() string         { return "render" }
func (f *fakeCommander) Compact() string        { return "compact" }
func (f *fakeCommander) Close()                 {}

type testLogger struct{}

func (testLogger) Debug(string, ...any)                          {}
func (testLogger) Info(string, ...any)                           {}
func (testLogger) Warn(string, ...any)                           {}
func (testLogger) Error(string, ...any)                          {}
func (t testLogger) WithField(string, any) output.LoggerPort     { return t }
func (t testLogger) WithFields(map[string]any) output.LoggerPort { return t }
func (testLogger) Close() error                                  { return nil }

func TestAllToolNamesAreUnique(t *testing.T) {
	tools := All(&fakeCommander{}, testLogger{})
	require.Len(t, tools, 9)

	seen := map[string]bool{}
	for _, tl := range tools {
		name := string(tl.Name())
		assert.False(t, seen[name], "duplicate tool name %s", name)
		assert.NotEmpty(t, tl.Description())
		seen[name] = true
	}
}

func TestGotoTool(t *testing.T) {
	fc := &fakeCommander{}
	tl := NewGotoTool(fc, testLogger{})

	out, err := tl.Execute(context.Background(), `{"url":"example.com"}`)
	require.NoError(t, err)
	assert.Equal(t, "goto example.com", out)

	_, err = tl.Execute(context.Background(), `{}`)
	assert.Error(t, err)

	_, err = tl.Execute(context.Background(), `not json`)
	assert.Error(t, err)
}

func TestClickTool(t *testing.T) {
	fc := &fakeCommander{}
	tl := NewClickTool(fc, testLogger{})

	out, err := tl.Execute(context.Background(), `{"id":"L3"}`)
	require.NoError(t, err)
	assert.Equal(t, "click L3", out)

	_, err = tl.Execute(context.Background(), `{"id":""}`)
	assert.Error(t, err)
}

func TestFillToolAllowsEmptyValue(t *testing.T) {
	fc := &fakeCommander{}
	tl := NewFillTool(fc, testLogger{})

	out, err := tl.Execute(context.Background(), `{"id":"I1","value":""}`)
	require.NoError(t, err)
	assert.Equal(t, "fill I1 ", out)
}

func TestSelectToolRequiresValue(t *testing.T) {
	fc := &fakeCommander{}
	tl := NewSelectTool(fc, testLogger{})

	_, err := tl.Execute(context.Background(), `{"id":"S1"}`)
	assert.Error(t, err)

	out, err := tl.Execute(context.Background(), `{"id":"S1","value":"Go"}`)
	require.NoError(t, err)
	assert.Equal(t, "select S1 Go", out)
}

func TestReadToolDefaultsLength(t *testing.T) {
	fc := &fakeCommander{}
	tl := NewReadTool(fc, testLogger{})

	out, err := tl.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "read 0", out)

	out, err = tl.Execute(context.Background(), `{"max_length":2000}`)
	require.NoError(t, err)
	assert.Equal(t, "read 2000", out)
}

func TestSearchTool(t *testing.T) {
	fc := &fakeCommander{}
	tl := NewSearchTool(fc, testLogger{})

	out, err := tl.Execute(context.Background(), `{"query":"go testing","engine":"ddg"}`)
	require.NoError(t, err)
	assert.Equal(t, "search go testing ddg", out)

	_, err = tl.Execute(context.Background(), `{"engine":"ddg"}`)
	assert.Error(t, err)
}

func TestBackAndStateIgnoreArguments(t *testing.T) {
	fc := &fakeCommander{}

	out, err := NewBackTool(fc, testLogger{}).Execute(context.Background(), "garbage")
	require.NoError(t, err)
	assert.Equal(t, "back", out)

	out, err = NewStateTool(fc, testLogger{}).Execute(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "state", out)
}
