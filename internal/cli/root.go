package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazegen/pkg/config"
)

// setup runs before every command. It attaches the logger to the command
// context and loads the configuration, unless the command is annotated with
// skipConfig.
//
// Config sources, lowest precedence first: built-in defaults, the TOML file
// named by --config (or the XDG default when present), .env, MAZEGEN_*
// variables. Command flags are applied by each command afterwards.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))

	if skipsConfig(cmd) {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// skipsConfig reports whether cmd or one of its parents opted out of config
// loading.
func skipsConfig(cmd *cobra.Command) bool {
	for ; cmd != nil; cmd = cmd.Parent() {
		if cmd.Annotations[skipConfig] == "true" {
			return true
		}
	}
	return false
}

// noConfig is the annotation set for commands that ignore the config file.
func noConfig() map[string]string {
	return map[string]string{skipConfig: "true"}
}
