package main

import (
	"context"
	"time"

	"envmon-go/drivers/hcsr04"
	"envmon-go/inference"
	"envmon-go/inference/model"
	"envmon-go/internal/platform"
	"envmon-go/services/display"
	"envmon-go/services/monitor"
	"envmon-go/x/logx"
)

type options struct {
	scenario scenario
	boots    int           // cold starts to simulate
	limit    time.Duration // simulated time budget
	pace     float64       // real seconds per simulated second
	model    []byte
}

type report struct {
	Boots      int
	Cycles     int
	Failures   int
	DeepSleeps int
	Resets     int
	Elapsed    time.Duration
	Halt       error
}

// simulate runs the monitor across cold restarts until the boot count or
// the time budget is used up.
func simulate(ctx context.Context, o options, log logx.Logger, sink display.Sink) (report, error) {
	var rep report
	start := time.Unix(0, 0)
	clk := platform.NewVirtualClock(start)
	clk.Pace = o.pace
	elapsed := func() time.Duration { return clk.Now().Sub(start) }

	if o.model == nil {
		o.model = model.Brightness
	}

	for rep.Boots < o.boots && elapsed() < o.limit {
		rep.Boots++
		log.Infof("boot %d at %v", rep.Boots, elapsed())

		// Fresh statics, as after a reset.
		var arena inference.Arena
		var engine inference.Engine

		sonar := platform.NewSonarSim(func(int) float32 { return o.scenario.distance(elapsed()) })
		ranger := hcsr04.New(sonar.Trig(), sonar.Echo(), sonar)
		ranger.Configure(hcsr04.Config{Log: log})

		light := &platform.LightScript{Lux: func(int) (float32, error) { return o.scenario.lux(elapsed()) }}
		power := &platform.SimPower{Clock: clk}

		ctl := monitor.New(monitor.DefaultConfig(), monitor.Deps{
			Distance: ranger,
			Light:    light,
			Engine:   &engine,
			Display:  sink,
			Log:      log,
			Clock:    clk,
			Power:    power,
		})
		err := ctl.Boot(monitor.BootStep{Name: "model", Run: func() error {
			if err := platform.LoadModel(&engine, o.model, arena[:]); err != nil {
				return err
			}
			log.Infof("model: %d bytes of %d byte arena", engine.ArenaUsed(), inference.ArenaSize)
			return nil
		}})
		if err != nil {
			rep.Halt = err
			break
		}

		stop := false
		for !stop && elapsed() < o.limit {
			if err := ctx.Err(); err != nil {
				rep.Elapsed = elapsed()
				return rep, err
			}
			switch ctl.Step() {
			case monitor.Sampling:
				if ctl.Last().Err != nil {
					rep.Failures++
				} else {
					rep.Cycles++
				}
			case monitor.DeepSleep:
				rep.Cycles++
				rep.DeepSleeps++
				stop = true
			case monitor.Halted:
				rep.Halt = ctl.Err()
				stop = true
			}
		}
		rep.Resets += power.Resets
		if rep.Halt != nil {
			break
		}
	}
	rep.Elapsed = elapsed()
	return rep, nil
}
