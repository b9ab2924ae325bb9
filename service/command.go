package service

import (
	"aegisbot/filters"
	"strings"

	"github.com/sirupsen/logrus"
)

type command struct {
	spec   filters.CommandSpec
	checks []func(c *CommandConfig) bool
	fn     func(c *CommandConfig)
}

var commands []*command
var commandNames = make(map[string]struct{})

func register(cmd *command) {
	commands = append(commands, cmd)
	for _, name := range cmd.spec.Names {
		commandNames[strings.ToLower(name)] = struct{}{}
	}
}

// IsRegisteredCommand reports whether name belongs to any registration;
// the enable/disable commands only accept known names.
func IsRegisteredCommand(name string) bool {
	_, ok := commandNames[strings.ToLower(name)]
	return ok
}

// CommandConfig carries one matched command. The match result fields are
// filled by the dispatcher for the handler to consume.
type CommandConfig struct {
	*BotConfig
	command string
	rest    string
	args    []string
}

// DispatchCommand tries the message against every registration and runs
// the first match after its permission checks pass. Reports the matched
// command name and whether any registration matched, checks included.
func (c *BotConfig) DispatchCommand() (string, bool) {
	m := c.update.Message
	if m == nil {
		return "", false
	}
	for _, cmd := range commands {
		res, ok := c.deps.Filters.MatchCommand(c.ctx, m, cmd.spec)
		if !ok {
			continue
		}
		commandConfig := &CommandConfig{
			BotConfig: c,
			command:   res.Command,
			rest:      res.Rest,
			args:      res.Args,
		}
		logrus.Infof("command_user=%v command=%s command_args=%v", m.From.ID, res.Command, res.Args)
		for _, check := range cmd.checks {
			if !check(commandConfig) {
				return res.Command, true
			}
		}
		cmd.fn(commandConfig)
		return res.Command, true
	}
	return "", false
}

func userIsAdmin(c *CommandConfig) bool {
	return c.deps.Filters.UserIsAdmin(c.ctx, filters.MessageEvent(c.update.Message))
}

func botIsAdmin(c *CommandConfig) bool {
	return c.deps.Filters.BotIsAdmin(c.ctx, filters.MessageEvent(c.update.Message))
}

func userCanRestrict(c *CommandConfig) bool {
	return c.deps.Filters.UserCanRestrict(c.ctx, filters.MessageEvent(c.update.Message))
}

func userCanPromote(c *CommandConfig) bool {
	return c.deps.Filters.UserCanPromote(c.ctx, filters.MessageEvent(c.update.Message))
}

func userCanChangeInfo(c *CommandConfig) bool {
	return c.deps.Filters.UserCanChangeInfo(c.ctx, filters.MessageEvent(c.update.Message))
}

func userCanPin(c *CommandConfig) bool {
	return c.deps.Filters.UserCanPin(c.ctx, filters.MessageEvent(c.update.Message))
}

func init() {
	defer func() {
		for _, cmd := range commands {
			logrus.Infof("registr_command=%v", cmd.spec.Names)
		}
	}()
	register(&command{
		spec: filters.CommandSpec{Names: []string{"start"}},
		fn:   func(c *CommandConfig) { c.startCommand() },
	})
	register(&command{
		spec: filters.CommandSpec{Names: afkCommandNames},
		fn:   func(c *CommandConfig) { c.setAfkCommand() },
	})
	register(&command{
		spec:   filters.CommandSpec{Names: []string{"enable"}},
		checks: []func(c *CommandConfig) bool{userIsAdmin},
		fn:     func(c *CommandConfig) { c.enableCommand() },
	})
	register(&command{
		spec:   filters.CommandSpec{Names: []string{"disable"}},
		checks: []func(c *CommandConfig) bool{userIsAdmin},
		fn:     func(c *CommandConfig) { c.disableCommand() },
	})
	register(&command{
		spec:   filters.CommandSpec{Names: []string{"disabledel"}},
		checks: []func(c *CommandConfig) bool{userIsAdmin},
		fn:     func(c *CommandConfig) { c.disableDelCommand() },
	})
	register(&command{
		spec:   filters.CommandSpec{Names: []string{"admincache"}},
		checks: []func(c *CommandConfig) bool{userIsAdmin},
		fn:     func(c *CommandConfig) { c.adminCacheCommand() },
	})
	register(&command{
		spec:   filters.CommandSpec{Names: []string{"ban"}},
		checks: []func(c *CommandConfig) bool{botIsAdmin, userCanRestrict},
		fn:     func(c *CommandConfig) { c.banCommand() },
	})
	register(&command{
		spec:   filters.CommandSpec{Names: []string{"unban"}},
		checks: []func(c *CommandConfig) bool{botIsAdmin, userCanRestrict},
		fn:     func(c *CommandConfig) { c.unBanCommand() },
	})
	register(&command{
		spec:   filters.CommandSpec{Names: []string{"promote"}},
		checks: []func(c *CommandConfig) bool{botIsAdmin, userCanPromote},
		fn:     func(c *CommandConfig) { c.promoteCommand() },
	})
	register(&command{
		spec:   filters.CommandSpec{Names: []string{"demote"}},
		checks: []func(c *CommandConfig) bool{botIsAdmin, userCanPromote},
		fn:     func(c *CommandConfig) { c.demoteCommand() },
	})
	register(&command{
		spec:   filters.CommandSpec{Names: []string{"pin"}},
		checks: []func(c *CommandConfig) bool{userCanPin},
		fn:     func(c *CommandConfig) { c.pinCommand() },
	})
	register(&command{
		spec:   filters.CommandSpec{Names: []string{"unpin"}},
		checks: []func(c *CommandConfig) bool{userCanPin},
		fn:     func(c *CommandConfig) { c.unPinCommand() },
	})
	register(&command{
		spec:   filters.CommandSpec{Names: []string{"settitle"}},
		checks: []func(c *CommandConfig) bool{userCanChangeInfo},
		fn:     func(c *CommandConfig) { c.setTitleCommand() },
	})
	register(&command{
		spec:   filters.CommandSpec{Names: []string{"setdesc"}},
		checks: []func(c *CommandConfig) bool{userCanChangeInfo},
		fn:     func(c *CommandConfig) { c.setDescCommand() },
	})
	register(&command{
		spec: filters.CommandSpec{Names: []string{"stats"}, Tier: filters.TierSudo},
		fn:   func(c *CommandConfig) { c.statsCommand() },
	})
}
