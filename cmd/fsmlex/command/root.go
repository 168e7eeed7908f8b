// SPDX-License-Identifier: MIT
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type (
	// Command holds the state shared by the fsmlex commands.
	Command struct {
		v      *viper.Viper
		logger *logrus.Logger
	}
)

const envPrefix = "FSMLEX"

// Command errors.
var (
	ErrConfig = errors.New("invalid configuration")
)

// GetRootCommand creates the fsmlex root command along with its subcommands.
func GetRootCommand() *cobra.Command {
	fc := &Command{
		v:      viper.New(),
		logger: logrus.New(),
	}

	root := &cobra.Command{
		Use:   "fsmlex",
		Short: "Tokenize JSON sources with a finite-state lexer",
		Long: `fsmlex drives the JSON grammar's finite-state automaton over sources.

Configuration is read, by decreasing priority, from flags, FSMLEX_* environment
variables (e.g. FSMLEX_RESYNC=true) & the YAML file given with --config.`,
		PersistentPreRunE: fc.load,
	}
	fc.registerFlags(root.PersistentFlags())

	AddTokensCommand(root, fc)
	AddGraphCommand(root, fc)

	return root
}

func (fc *Command) registerFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "YAML configuration file")
	fs.Bool("debug", false, "Log debug messages")

	fc.bind(fs, "debug")
}

// bind ties the named flags to their configuration keys.
func (fc *Command) bind(fs *pflag.FlagSet, names ...string) {
	for _, name := range names {
		if err := fc.v.BindPFlag(name, fs.Lookup(name)); err != nil {
			panic(fmt.Errorf("%w: flag %s: %w", ErrConfig, name, err))
		}
	}
}

func (fc *Command) load(cmd *cobra.Command, _ []string) error {
	// Usage is only relevant to flag errors, reported before this point.
	cmd.SilenceUsage = true

	fc.v.SetEnvPrefix(envPrefix)
	fc.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	fc.v.AutomaticEnv()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		fc.v.SetConfigFile(path)
		fc.v.SetConfigType("yaml")

		if err := fc.v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}

	fc.logger.SetOutput(cmd.ErrOrStderr())
	if fc.debug() {
		fc.logger.SetLevel(logrus.DebugLevel)
		fc.logger.Debugf("configuration: %v", fc.v.AllSettings())
	}

	return nil
}

func (fc *Command) debug() bool { return fc.v.GetBool("debug") }
