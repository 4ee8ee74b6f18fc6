package vantage

import (
	"time"
)

// Time is updated once per tick in Prelude, before anything else runs.
// Elapsed is seconds since the app started; closed-form animations are
// functions of it rather than integrating Dt.
type Time struct {
	Start   time.Time
	Time    time.Time
	Dt      time.Duration
	Elapsed float64
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{
		Start: now,
		Time:  now,
		Dt:    0,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
	timeResource.Elapsed = now.Sub(timeResource.Start).Seconds()
}
