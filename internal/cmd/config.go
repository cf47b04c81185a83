package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uniattend/internal/config"
	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/ux"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit the client configuration",
	Long: `Show and edit the client configuration.

Settings come from defaults, <home>/config.yaml, .env, UNIATTEND_*
environment variables and flags, in that order. 'config set' only edits
config.yaml.

Examples:
  uniattend config view
  uniattend config set api_url https://attend.uni.kz
  uniattend config set storage.backend redis
  uniattend config set roles.4 assistant`,
	Annotations: map[string]string{noAppAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configViewCmd = &cobra.Command{
	Use:         "view",
	Short:       "Show the effective configuration",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noAppAnnotation: "true"},
	RunE:        runConfigView,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file path",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noAppAnnotation: "true"},
	RunE:        runConfigPath,
}

var configGetCmd = &cobra.Command{
	Use:         "get <key>",
	Short:       "Print one effective setting",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{noAppAnnotation: "true"},
	RunE:        runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:         "set <key> <value>",
	Short:       "Change one setting in config.yaml",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{noAppAnnotation: "true"},
	RunE:        runConfigSet,
}

func init() {
	configCmd.AddCommand(configViewCmd, configPathCmd, configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

const redacted = "********"

// settings is the flat key/value form of a Config.
type settings map[string]string

func (s settings) Table() ux.Table {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]string, len(keys))
	for i, k := range keys {
		rows[i] = []string{k, s[k]}
	}
	return ux.Table{Headers: []string{"KEY", "VALUE"}, Rows: rows}
}

func settingsOf(cfg config.Config) settings {
	s := settings{}
	for _, key := range config.Keys() {
		if key == "roles.<id>" {
			continue
		}
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		s[key] = value
	}
	for id, name := range cfg.RoleCatalog() {
		s["roles."+strconv.Itoa(id)] = name
	}
	if s["storage.redis.password"] != "" {
		s["storage.redis.password"] = redacted
	}
	return s
}

// loadConfig runs the configuration layers the same way the App does.
func loadConfig(cmd *cobra.Command) (*CommandContext, *config.Loaded, error) {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts := cc.AppOptions(cmd)
	loaded, err := config.Load(config.Options{Home: opts.Home, EnvFiles: opts.EnvFiles})
	if err != nil {
		return nil, nil, err
	}
	if cc.APIURL != "" {
		loaded.Config.APIURL = cc.APIURL
	}
	if cc.Format != "" {
		loaded.Config.Output.Format = cc.Format
	}
	if cc.NoColor {
		loaded.Config.Output.NoColor = true
	}
	return cc, loaded, nil
}

// formatterFor builds the output formatter for commands without an App.
func formatterFor(cmd *cobra.Command, cc *CommandContext, format string, noColor bool) (ux.Formatter, error) {
	return ux.NewFormatter(format, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: noColor || cc.NoColor,
		Query:   cc.Query,
	})
}

func runConfigView(cmd *cobra.Command, _ []string) error {
	cc, loaded, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, err := formatterFor(cmd, cc, loaded.Config.Output.Format, loaded.Config.Output.NoColor)
	if err != nil {
		return err
	}
	return f.Format(settingsOf(loaded.Config))
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	_, loaded, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), loaded.Path)
	return err
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	_, loaded, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	value, err := loaded.Config.Get(args[0])
	if err != nil {
		return err
	}
	if args[0] == "storage.redis.password" && value != "" {
		value = redacted
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
	return err
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	_, loaded, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	key, value := args[0], args[1]

	cfg, err := config.ReadFile(loaded.Path)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}

	check := cfg
	check.Sanitize(loaded.Home)
	if err := check.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, fmt.Sprintf("refusing to save %s", key), err)
	}
	if err := config.Save(cfg, loaded.Path); err != nil {
		return err
	}
	if key == "storage.redis.password" {
		value = redacted
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return err
}
