package rewrite_test

import (
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/recast/rewrite"
)

type entry struct {
	level   commonlog.Level
	name    string
	message string
	values  map[string]string
}

// recorder is a commonlog backend that keeps every message.
type recorder struct {
	mu      sync.Mutex
	entries []entry
}

func (r *recorder) Configure(verbosity int, path *string) {}
func (r *recorder) GetWriter() io.Writer                  { return io.Discard }
func (r *recorder) AllowLevel(level commonlog.Level, name ...string) bool {
	return true
}
func (r *recorder) SetMaxLevel(level commonlog.Level, name ...string) {}
func (r *recorder) GetMaxLevel(name ...string) commonlog.Level {
	return commonlog.Debug
}

func (r *recorder) NewMessage(level commonlog.Level, depth int, name ...string) commonlog.Message {
	return commonlog.NewUnstructuredMessage(func(m *commonlog.UnstructuredMessage) {
		e := entry{level: level, message: m.Message, values: map[string]string{}}
		if len(name) > 0 {
			e.name = name[len(name)-1]
		}
		for _, v := range m.Values {
			e.values[v.Key] = v.Value
		}
		r.mu.Lock()
		r.entries = append(r.entries, e)
		r.mu.Unlock()
	})
}

func (r *recorder) find(message string) (entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.message == message {
			return e, true
		}
	}
	return entry{}, false
}

// Swaps the global backend, so it must not run in parallel.
func TestRunLogsKeyValues(t *testing.T) {
	rec := &recorder{}
	commonlog.SetBackend(rec)
	t.Cleanup(func() { commonlog.SetBackend(nil) })

	rewrite.NewPipeline().Run(newTextFile("a.txt", "hello"),
		replaceRecipe{},
		replaceRecipe{old: "hello", new: "bye"},
	)

	skipped, ok := rec.find("skipping invalid recipe")
	require.True(t, ok)
	assert.Equal(t, commonlog.Warning, skipped.level)
	assert.Equal(t, "rewrite", skipped.name)
	assert.Equal(t, "a.txt", skipped.values["path"])
	assert.Equal(t, "test.Replace", skipped.values["recipe"])
	assert.Contains(t, skipped.values["error"], "old")

	finished, ok := rec.find("recipe finished")
	require.True(t, ok)
	assert.Equal(t, commonlog.Debug, finished.level)
	assert.Equal(t, string(rewrite.StatusApplied), finished.values["status"])
	assert.Equal(t, "1", finished.values["touched"])
}
