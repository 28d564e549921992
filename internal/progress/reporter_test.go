package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	_, ok := NewReporter().(*CIReporter)
	assert.True(t, ok)
}

func TestNewReporterInTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	_, ok := NewReporter().(*TerminalReporter)
	assert.True(t, ok)
}

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}
	r.Start("Asking the consultant")
	r.Finish()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "Asking the consultant...", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "done in "))
}

func TestTerminalReporterStartFinish(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{Out: &buf}
	r.Start("Generating diagram")
	time.Sleep(250 * time.Millisecond)
	r.Finish()
	r.Finish()

	assert.Contains(t, buf.String(), "Generating diagram")
}
