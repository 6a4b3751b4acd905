package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter().(*CIReporter); !ok {
		t.Error("expected a CIReporter when CI is set")
	}
}

func TestCIReporterOutput(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}
	r.Start(3)
	r.Update(1, "a.json")
	r.Update(2, "b.json")
	r.Finish()

	out := buf.String()
	for _, want := range []string{"exporting 3 documents", "[1/3] a.json", "[2/3] b.json", "export finished"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReporterLifecycle(t *testing.T) {
	for _, r := range []Reporter{&TerminalReporter{}, &CIReporter{Out: &bytes.Buffer{}}, Silent{}} {
		// Update and Finish before Start must not panic.
		r.Update(1, "early")
		r.Finish()
		r.Start(2)
		r.Update(1, "a")
		r.Update(2, "b")
		r.Finish()
	}
}
