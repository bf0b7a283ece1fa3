package commands

import (
	"strings"

	"github.com/goliatone/go-cms-footnotes/internal/logging"
	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
)

const commandLoggerRoot = "footnotes.commands"

// CommandLogger returns the logger shared by one group of footnote command
// handlers, named footnotes.commands.<group>. Handlers add page and marker
// fields on top of the component and group tags set here.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	group = strings.ToLower(strings.TrimSpace(group))
	name := commandLoggerRoot
	fields := map[string]any{"component": "command"}
	if group != "" {
		name += "." + group
		fields["command_group"] = group
	}
	return logging.WithFields(logging.ModuleLogger(provider, name), fields)
}
