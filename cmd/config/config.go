package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/pwforge/cmd/common"
	pwconfig "github.com/gigurra/pwforge/cmd/common/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Swappable for tests.
var (
	configPath = pwconfig.Path
	loadConfig = pwconfig.LoadFrom
	saveConfig = pwconfig.SaveTo
)

type InitParams struct {
	Force bool `short:"F" optional:"true" help:"Overwrite an existing config file." default:"false"`
}

func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and manage the pwforge configuration",
		Long: `Show and manage the pwforge configuration file.

The file lives at ~/.pwforge/config.yaml (override with PWFORGE_CONFIG).
Any value can be overridden with an environment variable, for example
PWFORGE_GENERATOR_MAX_WORDS=5000 or PWFORGE_OUTPUT_COMPRESSION=zst.
A .env file in the working directory is read as well.

Examples:
  pwforge config path
  pwforge config show
  pwforge config init --force
  pwforge config clear-profile`,
	}

	cmd.AddCommand(pathCmd())
	cmd.AddCommand(showCmd())
	cmd.AddCommand(initCmd())
	cmd.AddCommand(clearProfileCmd())

	return cmd
}

func pathCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:         "path",
		Short:       "Print the config file path",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *boa.NoParams, cmd *cobra.Command, args []string) {
			fmt.Println(configPath())
		},
	}.ToCobra()
}

func showCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:         "show",
		Short:       "Print the effective configuration as YAML",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *boa.NoParams, cmd *cobra.Command, args []string) {
			exit(runShow(os.Stdout))
		},
	}.ToCobra()
}

func initCmd() *cobra.Command {
	return boa.CmdT[InitParams]{
		Use:         "init",
		Short:       "Write a config file with the default values",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *InitParams, cmd *cobra.Command, args []string) {
			exit(runInit(params, os.Stdout))
		},
	}.ToCobra()
}

func clearProfileCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:         "clear-profile",
		Short:       "Forget the saved personal inputs",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *boa.NoParams, cmd *cobra.Command, args []string) {
			exit(runClearProfile(os.Stdout))
		},
	}.ToCobra()
}

func exit(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "pwforge config: %v\n", err)
		os.Exit(1)
	}
}

func runShow(w io.Writer) error {
	cfg, err := loadConfig(configPath())
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func runInit(params *InitParams, w io.Writer) error {
	path := configPath()
	if !params.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use -F to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if err := saveConfig(pwconfig.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote default config to: %s\n", path)
	return nil
}

func runClearProfile(w io.Writer) error {
	path := configPath()
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	if cfg.Profile.IsEmpty() {
		fmt.Fprintln(w, "Profile is already empty.")
		return nil
	}
	cfg.Profile = pwconfig.Profile{}
	if err := saveConfig(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared saved profile in: %s\n", path)
	return nil
}
