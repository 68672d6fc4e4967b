package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"envmon-go/errcode"
	"envmon-go/inference"
	"envmon-go/inference/model"
	"envmon-go/services/display"
	"envmon-go/services/monitor"
	"envmon-go/x/logx"
)

func opts(name string, boots int, limit time.Duration) options {
	return options{scenario: scenarios[name], boots: boots, limit: limit}
}

func TestDropoutSleepsOnFallback(t *testing.T) {
	var sink display.Buffer
	log := &logx.Recorder{}
	rep, err := simulate(context.Background(), opts("dropout", 1, time.Minute), log, &sink)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if rep.DeepSleeps != 1 || rep.Halt != nil {
		t.Fatalf("report = %+v", rep)
	}
	if rep.Cycles < 12 {
		t.Fatalf("only %d cycles before the dropout", rep.Cycles)
	}
	if !log.Contains("distance sensor timeout") || !log.Contains("Invalid distance reading!") {
		t.Fatalf("missing dropout diagnostics")
	}
	last := sink.Last()
	if last[1] != "Distance: 400.00 cm" || last[len(last)-1] != monitor.SleepNotice {
		t.Fatalf("last frame = %q", last)
	}
}

func TestDarkRoomStaysAwake(t *testing.T) {
	var sink display.Buffer
	rep, err := simulate(context.Background(), opts("dark", 1, 10*time.Second), logx.Nop{}, &sink)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if rep.DeepSleeps != 0 || rep.Resets != 0 {
		t.Fatalf("report = %+v", rep)
	}
	if rep.Cycles != 20 {
		t.Fatalf("cycles = %d, want one per 500 ms", rep.Cycles)
	}
	for _, f := range sink.Frames() {
		if !strings.HasPrefix(f[1], "Distance: 79.9") && !strings.HasPrefix(f[1], "Distance: 80.0") {
			t.Fatalf("frame = %q", f)
		}
	}
}

func TestApproachColdRestarts(t *testing.T) {
	rep, err := simulate(context.Background(), opts("approach", 3, 2*time.Minute), logx.Nop{}, &display.Buffer{})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if rep.Boots != 3 || rep.DeepSleeps != 3 {
		t.Fatalf("report = %+v", rep)
	}
	if rep.Resets != 0 {
		t.Fatalf("watchdog starved %d times", rep.Resets)
	}
}

func TestFlakyLightSensorKeepsCycling(t *testing.T) {
	log := &logx.Recorder{}
	rep, err := simulate(context.Background(), opts("bright", 1, 8*time.Second), log, &display.Buffer{})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if rep.Cycles != 16 || rep.DeepSleeps != 0 {
		t.Fatalf("report = %+v", rep)
	}
	if !log.Contains("light sensor: i2c: nack") {
		t.Fatalf("light errors not logged")
	}
}

func TestBadModelHalts(t *testing.T) {
	bad := append([]byte(nil), model.Brightness...)
	bad[4]++
	o := opts("dark", 3, time.Minute)
	o.model = bad
	rep, err := simulate(context.Background(), o, logx.Nop{}, &display.Buffer{})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if rep.Boots != 1 || rep.Cycles != 0 {
		t.Fatalf("report = %+v", rep)
	}
	if errcode.Of(rep.Halt) != errcode.ModelLoad || !errors.Is(rep.Halt, inference.ErrVersionMismatch) {
		t.Fatalf("Halt = %v", rep.Halt)
	}
}

func TestCancelStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := simulate(ctx, opts("dark", 1, time.Minute), logx.Nop{}, &display.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("simulate = %v", err)
	}
}

func TestRunExitCodes(t *testing.T) {
	var stdout, stderr strings.Builder
	if code := run([]string{"-scenario", "nope"}, &stdout, &stderr); code != 2 {
		t.Fatalf("unknown scenario exit = %d", code)
	}
	if !strings.Contains(stderr.String(), `unknown scenario "nope"`) {
		t.Fatalf("stderr = %q", stderr.String())
	}
	if code := run([]string{"-bogus"}, &stdout, &stderr); code != 2 {
		t.Fatalf("bad flag exit = %d", code)
	}

	stdout.Reset()
	if code := run([]string{"-scenario", "dark", "-boots", "1", "-for", "2s"}, &stdout, &stderr); code != 0 {
		t.Fatalf("dark run exit = %d", code)
	}
	if !strings.Contains(stdout.String(), "Brightness:") {
		t.Fatalf("panel not drawn:\n%s", stdout.String())
	}
}
