package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sternrassler/kickstarter-table/internal/testutil"
)

// execute runs the root command against a mock dataset and returns stdout.
func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--env-file=" + filepath.Join(t.TempDir(), "none.env")}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want command
	}{
		{"n", cmdNext},
		{" Next ", cmdNext},
		{"p", cmdPrevious},
		{"prev", cmdPrevious},
		{"previous", cmdPrevious},
		{"q", cmdQuit},
		{"QUIT", cmdQuit},
		{"", cmdRedraw},
		{"jump", cmdUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := parseCommand(tt.line); got != tt.want {
				t.Errorf("parseCommand(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestInteractive_Navigation(t *testing.T) {
	mock := testutil.NewMockDataset()
	defer mock.Close()
	mock.SetResponse(testutil.NewHealthyResponse(testutil.Projects(6)))

	out, err := execute(t, "n\nn\np\nq\n", "--url", mock.DatasetURL())
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	if !strings.HasPrefix(out, "Loading data...\n") {
		t.Errorf("output does not start with loading indicator:\n%s", out)
	}
	for _, want := range []string{
		"(Previous)  Page 1 of 2  [Next]",
		"[Previous]  Page 2 of 2  (Next)",
		"6%",
		"$600",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// once after the load and once after p
	if got := strings.Count(out, "Page 1 of 2"); got != 2 {
		t.Errorf("Page 1 renders = %d, want 2", got)
	}
	if mock.RequestCount() != 1 {
		t.Errorf("dataset requests = %d, want 1", mock.RequestCount())
	}
}

func TestInteractive_UnknownCommand(t *testing.T) {
	mock := testutil.NewMockDataset()
	defer mock.Close()
	mock.SetResponse(testutil.NewHealthyResponse(testutil.Projects(2)))

	out, err := execute(t, "jump\n", "--url", mock.DatasetURL())
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.Contains(out, `Unknown command "jump". `+hint) {
		t.Errorf("output missing hint:\n%s", out)
	}
}

func TestInteractive_OverlongLine(t *testing.T) {
	mock := testutil.NewMockDataset()
	defer mock.Close()
	mock.SetResponse(testutil.NewHealthyResponse(testutil.Projects(6)))

	// Longer than bufio.MaxScanTokenSize; reading stops there.
	input := strings.Repeat("x", 70000) + "\nn\nq\n"
	out, err := execute(t, input, "--url", mock.DatasetURL())
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Fatalf("execute() error = %v, want bufio.ErrTooLong", err)
	}
	if strings.Contains(out, "Page 2 of 2") {
		t.Errorf("commands after the overlong line were applied:\n%s", out)
	}
}

func TestInteractive_Failure(t *testing.T) {
	mock := testutil.NewMockDataset()
	defer mock.Close()
	mock.SetResponse(testutil.NewNotFoundResponse())

	out, err := execute(t, "n\n", "--url", mock.DatasetURL())
	if !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("execute() error = %v, want ErrLoadFailed", err)
	}

	want := "Error: Error: 404 Not Found"
	if got := strings.Count(out, want); got != 1 {
		t.Errorf("%q shown %d times, want 1:\n%s", want, got, out)
	}
	if strings.Contains(out, "Kickstarter Projects") {
		t.Errorf("failure rendered the table:\n%s", out)
	}
}

func TestDump(t *testing.T) {
	mock := testutil.NewMockDataset()
	defer mock.Close()
	mock.SetResponse(testutil.NewHealthyResponse(testutil.Projects(12)))

	tests := []struct {
		name      string
		page      string
		indicator string
		firstRow  string
	}{
		{"first page", "1", "Page 1 of 3", "1 "},
		{"middle page", "2", "Page 2 of 3", "6 "},
		{"clamped", "9", "Page 3 of 3", "11 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", "dump", "--page", tt.page, "--url", mock.DatasetURL())
			if err != nil {
				t.Fatalf("execute() error = %v", err)
			}
			if !strings.Contains(out, tt.indicator) {
				t.Errorf("output missing %q:\n%s", tt.indicator, out)
			}

			var found bool
			for _, line := range strings.Split(out, "\n") {
				if strings.HasPrefix(line, tt.firstRow) {
					found = true
				}
			}
			if !found {
				t.Errorf("no row starting with %q:\n%s", tt.firstRow, out)
			}
		})
	}
}

func TestDump_InvalidPage(t *testing.T) {
	if _, err := execute(t, "", "dump", "--page", "0"); err == nil {
		t.Error("expected error for --page 0")
	}
}

func TestResolve_InvalidURL(t *testing.T) {
	_, err := execute(t, "", "--url", "ftp://example.com/data.json")
	if err == nil || !strings.Contains(err.Error(), "must be http(s)") {
		t.Errorf("execute() error = %v, want url validation error", err)
	}
}

func TestResolve_RedisUnavailable(t *testing.T) {
	mock := testutil.NewMockDataset()
	defer mock.Close()
	mock.SetResponse(testutil.NewHealthyResponse(testutil.Projects(1)))

	// Nothing listens on port 1; the cache is dropped and the load proceeds.
	out, err := execute(t, "q\n", "--url", mock.DatasetURL(), "--redis-url", "redis://127.0.0.1:1/0")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.Contains(out, "Page 1 of 1") {
		t.Errorf("output missing table:\n%s", out)
	}
}
