// Package policy holds the decision policies a robot can be started with.
package policy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agrif/littlebots/model"
	"github.com/agrif/littlebots/robot"
)

// Guard always guards. It is the reference stand-in for a real strategy.
type Guard struct{}

func (Guard) Act(model.WorldInfo, model.WorldState) model.Action {
	return model.Guard()
}

// Center walks to the middle of the grid and holds it. On the way it
// attacks any enemy robot standing next to it.
type Center struct{}

func (Center) Act(info model.WorldInfo, state model.WorldState) model.Action {
	self := state.Local
	center := CenterPoint(info)
	if self.Location == center {
		return model.Guard()
	}
	for _, bot := range state.Robots {
		if bot.PlayerID != self.PlayerID && Dist(bot.Location, self.Location) <= 1 {
			return model.Attack(bot.Location[0], bot.Location[1])
		}
	}
	next := Toward(self.Location, center)
	return model.Move(next[0], next[1])
}

var registry = map[string]func() robot.Policy{
	"guard":  func() robot.Policy { return Guard{} },
	"center": func() robot.Policy { return Center{} },
}

// Names lists the policies ByName knows.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func ByName(name string) (robot.Policy, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return f(), nil
}
