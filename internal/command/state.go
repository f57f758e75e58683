package command

import (
	"fmt"

	"github.com/towerkeep/mudcore/internal/session"
)

func registerState(d *Dispatcher) {
	d.register("sleep", false, handleSleep)
	d.register("wake", false, handleWake)
	d.register("stand", false, handleStand)
	d.register("rest", false, handleRest)
	d.register("meditate", false, handleMeditate)
	d.register("time", false, handleTime)
}

func handleSleep(ctx *Context) ([]string, session.State) {
	if ctx.User.CombatTarget != "" {
		return single(ctx, "You can't sleep while fighting!\n")
	}
	if ctx.User.IsResting {
		return single(ctx, "You are already sleeping.\n")
	}
	ctx.User.IsResting = true
	ctx.User.IsMeditating = false
	return single(ctx, "You lie down and fall asleep.\n")
}

func handleWake(ctx *Context) ([]string, session.State) {
	if !ctx.User.IsResting && !ctx.User.IsMeditating {
		return single(ctx, "You are already awake.\n")
	}
	ctx.User.IsResting = false
	ctx.User.IsMeditating = false
	return single(ctx, "You wake up and stand.\n")
}

func handleStand(ctx *Context) ([]string, session.State) {
	if ctx.User.CombatTarget != "" {
		return single(ctx, "You are already standing (fighting).\n")
	}
	if !ctx.User.IsResting && !ctx.User.IsMeditating {
		return single(ctx, "You are already standing.\n")
	}
	ctx.User.IsResting = false
	ctx.User.IsMeditating = false
	return single(ctx, "You stand up.\n")
}

func handleRest(ctx *Context) ([]string, session.State) {
	if ctx.User.CombatTarget != "" {
		return single(ctx, "You can't rest while fighting!\n")
	}
	if ctx.User.IsResting {
		return single(ctx, "You are already resting.\n")
	}
	ctx.User.IsResting = true
	ctx.User.IsMeditating = false
	return single(ctx, "You sit down and rest, recovering health faster.\n")
}

func handleMeditate(ctx *Context) ([]string, session.State) {
	if ctx.User.CombatTarget != "" {
		return single(ctx, "You can't meditate while fighting!\n")
	}
	if ctx.User.Resources == nil {
		return single(ctx, "You have nothing to meditate on.\n")
	}
	if ctx.User.IsMeditating {
		return single(ctx, "You are already meditating.\n")
	}
	ctx.User.IsMeditating = true
	ctx.User.IsResting = false
	return single(ctx, "You close your eyes and meditate, recovering mana faster.\n")
}

func handleTime(ctx *Context) ([]string, session.State) {
	clock := ctx.World.Clock
	timeOfDay := clock.GetTimeOfDay()
	var periodMsg string
	if clock.IsDay() {
		periodMsg = fmt.Sprintf("It is daytime. Night falls in %.1f minutes.\n", clock.GetMinutesUntilNextPeriod())
	} else {
		periodMsg = fmt.Sprintf("It is nighttime. Dawn breaks in %.1f minutes.\n", clock.GetMinutesUntilNextPeriod())
	}
	return single(ctx, fmt.Sprintf("%s (%s).\n%s", clock.GetDescriptiveTime(), timeOfDay, periodMsg))
}
