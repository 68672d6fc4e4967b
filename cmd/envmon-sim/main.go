// cmd/envmon-sim runs the monitor control loop against simulated sensors on
// the host, with the OLED drawn in the terminal.
//
//	envmon-sim -scenario approach -boots 3 -pace 0.2
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"envmon-go/services/display"
	"envmon-go/x/logx"
)

func main() { os.Exit(run(os.Args[1:], os.Stdout, os.Stderr)) }

// run parses args, simulates and returns the process exit code. Deferred
// cleanup runs before the caller exits.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("envmon-sim", flag.ContinueOnError)
	flags.SetOutput(stderr)
	name := flags.String("scenario", "approach", "one of: "+strings.Join(scenarioNames(), ", "))
	boots := flags.Int("boots", 3, "cold starts to simulate")
	limit := flags.Duration("for", 2*time.Minute, "simulated time budget")
	pace := flags.Float64("pace", 0, "real seconds per simulated second (0 = as fast as possible)")
	panel := flags.Bool("panel", true, "draw the display in the terminal")
	debug := flags.Bool("debug", false, "development logging")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	sc, ok := scenarios[*name]
	if !ok {
		fmt.Fprintf(stderr, "unknown scenario %q (have %s)\n", *name, strings.Join(scenarioNames(), ", "))
		return 2
	}

	log, err := logx.NewZap(*debug)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer log.Sync()

	var out io.Writer = io.Discard
	if *panel {
		out = stdout
	}
	sink := display.NewPanel(out, "envmon · "+*name)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Infof("scenario %s: %s", *name, sc.about)
	rep, err := simulate(ctx, options{scenario: sc, boots: *boots, limit: *limit, pace: *pace}, log, sink)
	log.Infow("simulation finished",
		"boots", rep.Boots,
		"cycles", rep.Cycles,
		"inference_failures", rep.Failures,
		"deep_sleeps", rep.DeepSleeps,
		"watchdog_resets", rep.Resets,
		"elapsed", rep.Elapsed,
	)
	if err != nil {
		log.Warnf("interrupted: %v", err)
	}
	if rep.Halt != nil {
		log.Errorf("halted: %v", rep.Halt)
		return 1
	}
	return 0
}
