package main

import (
	"errors"
	"flag"
	"testing"

	"github.com/urfave/cli/v2"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/linkscan/internal/config"
	"github.com/nikbrunner/linkscan/internal/model"
	"github.com/nikbrunner/linkscan/internal/scan"
	"github.com/nikbrunner/linkscan/internal/selection"
	"github.com/nikbrunner/linkscan/internal/writer"
)

func items(urls ...string) []model.LinkItem {
	out := make([]model.LinkItem, len(urls))
	for i, u := range urls {
		out[i] = model.LinkItem{URL: u}
	}
	return out
}

func TestSelectIndexes(t *testing.T) {
	t.Run("checks one-based entries", func(t *testing.T) {
		got, err := selectIndexes(items("a", "b", "c"), "1, 3")
		assert.NilError(t, err)
		assert.DeepEqual(t, selection.Checked(got), []string{"a", "c"})
	})

	t.Run("repeated entry stays checked", func(t *testing.T) {
		got, err := selectIndexes(items("a", "b"), "2,2")
		assert.NilError(t, err)
		assert.DeepEqual(t, selection.Checked(got), []string{"b"})
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := selectIndexes(items("a"), "2")
		assert.Check(t, errors.Is(err, selection.ErrIndexOutOfRange))
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := selectIndexes(items("a"), "x")
		assert.ErrorContains(t, err, `bad --select entry "x"`)
	})
}

func TestPrintOutcome(t *testing.T) {
	tests := []struct {
		name    string
		outcome writer.Outcome
		wantErr string
	}{
		{
			name:    "nothing selected",
			outcome: writer.Outcome{Status: writer.NothingToDo, Reason: writer.ReasonNoSelection},
		},
		{
			name:    "blank folder title",
			outcome: writer.Outcome{Status: writer.NothingToDo, Reason: writer.ReasonInvalidFolderTitle},
			wantErr: "folder title cannot be empty",
		},
		{
			name: "success",
			outcome: writer.Outcome{
				Status:  writer.Success,
				Created: []writer.Created{{URL: "https://a.com", ID: "1"}},
			},
		},
		{
			name: "partial",
			outcome: writer.Outcome{
				Status:  writer.Partial,
				Created: []writer.Created{{URL: "https://a.com", ID: "1"}},
				Failed:  []writer.Failure{{URL: "https://b.com", Err: errors.New("boom")}},
			},
			wantErr: "1 of 2 bookmarks failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := printOutcome(tt.outcome)
			if tt.wantErr == "" {
				assert.NilError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range sourceFlags() {
		assert.NilError(t, f.Apply(set))
	}
	assert.NilError(t, set.Parse(args))
	return cli.NewContext(&cli.App{}, set, nil)
}

func TestSourceFrom(t *testing.T) {
	cfg := config.Default(t.TempDir())

	t.Run("stdin by default", func(t *testing.T) {
		src, err := sourceFrom(newContext(t), &cfg)
		assert.NilError(t, err)
		assert.Check(t, is.DeepEqual(src, scan.Reader{}))
	})

	t.Run("url with article", func(t *testing.T) {
		src, err := sourceFrom(newContext(t, "--url", "https://a.com", "--article"), &cfg)
		assert.NilError(t, err)
		assert.Check(t, is.DeepEqual(src, scan.HTTPSource{URL: "https://a.com", Article: true}))
	})

	t.Run("tab uses configured debug address", func(t *testing.T) {
		src, err := sourceFrom(newContext(t, "--tab"), &cfg)
		assert.NilError(t, err)
		assert.Check(t, is.DeepEqual(src, scan.TabSource{DebugAddr: "127.0.0.1:9222"}))
	})

	t.Run("tab with explicit address", func(t *testing.T) {
		src, err := sourceFrom(newContext(t, "--tab", "--debug-addr", "localhost:9333"), &cfg)
		assert.NilError(t, err)
		assert.Check(t, is.DeepEqual(src, scan.TabSource{DebugAddr: "localhost:9333"}))
	})

	t.Run("two sources conflict", func(t *testing.T) {
		_, err := sourceFrom(newContext(t, "--url", "https://a.com", "--clipboard"), &cfg)
		assert.Check(t, errors.Is(err, errSourceConflict))
	})

	t.Run("article without url", func(t *testing.T) {
		_, err := sourceFrom(newContext(t, "--file", "page.html", "--article"), &cfg)
		assert.ErrorContains(t, err, "--article needs --url")
	})
}

func TestReadsStdin(t *testing.T) {
	assert.Check(t, readsStdin(scan.Reader{}))
	assert.Check(t, readsStdin(scan.Reader{Path: "-"}))
	assert.Check(t, !readsStdin(scan.Reader{Path: "page.html"}))
	assert.Check(t, !readsStdin(scan.HTTPSource{URL: "https://a.com"}))
}
