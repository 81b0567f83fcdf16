package debounce

import (
	"testing"
	"time"
)

func TestOnlyLatestTickFires(t *testing.T) {
	d := New[string](100 * time.Millisecond)
	first := d.Push("m")
	second := d.Push("mi")
	last := d.Push("mic")

	if last.After != 100*time.Millisecond {
		t.Fatalf("unexpected quiet period: %v", last.After)
	}
	if _, ok := d.Fire(first.Seq); ok {
		t.Fatalf("stale tick must not fire")
	}
	if _, ok := d.Fire(second.Seq); ok {
		t.Fatalf("stale tick must not fire")
	}
	v, ok := d.Fire(last.Seq)
	if !ok || v != "mic" {
		t.Fatalf("expected last value, got %q %v", v, ok)
	}
}

func TestFiresAtMostOnce(t *testing.T) {
	d := New[string](0)
	tick := d.Push("goofy")
	if _, ok := d.Fire(tick.Seq); !ok {
		t.Fatalf("expected fire")
	}
	if _, ok := d.Fire(tick.Seq); ok {
		t.Fatalf("expected a single fire per burst")
	}
	if d.Pending() {
		t.Fatalf("expected nothing pending")
	}
}

func TestDefaultQuiet(t *testing.T) {
	if got := New[int](-1).Quiet(); got != DefaultQuiet {
		t.Fatalf("expected default quiet, got %v", got)
	}
}

func TestEmptyValueStillFires(t *testing.T) {
	d := New[string](time.Millisecond)
	tick := d.Push("")
	v, ok := d.Fire(tick.Seq)
	if !ok || v != "" {
		t.Fatalf("expected empty value to fire, got %q %v", v, ok)
	}
}

func TestCancel(t *testing.T) {
	d := New[string](time.Millisecond)
	tick := d.Push("donald")
	d.Cancel()
	if _, ok := d.Fire(tick.Seq); ok {
		t.Fatalf("cancelled value must not fire")
	}
	next := d.Push("daisy")
	if v, ok := d.Fire(next.Seq); !ok || v != "daisy" {
		t.Fatalf("expected debouncer usable after cancel, got %q %v", v, ok)
	}
}

func TestStop(t *testing.T) {
	d := New[string](time.Millisecond)
	tick := d.Push("pluto")
	if !d.Pending() {
		t.Fatalf("expected pending value")
	}
	d.Stop()
	if d.Pending() {
		t.Fatalf("expected nothing pending after stop")
	}
	if _, ok := d.Fire(tick.Seq); ok {
		t.Fatalf("stopped debouncer must not fire")
	}
	after := d.Push("chip")
	if _, ok := d.Fire(after.Seq); ok {
		t.Fatalf("pushes after stop must not fire")
	}
}
