package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arthur-debert/apploader/internal/version"
	"github.com/arthur-debert/apploader/pkg/config"
	"github.com/arthur-debert/apploader/pkg/logging"
	"github.com/arthur-debert/apploader/pkg/paths"
	"github.com/arthur-debert/apploader/pkg/ui/styles"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	configPath string
	gamesDir   string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "apploader",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logFile := ""
			if p, err := paths.New(); err == nil {
				logFile = p.LogFilePath()
			}
			logging.SetupLogger(opts.verbosity, logFile)
			styles.SetColor(styles.ColorSupported(os.Stdout))
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.gamesDir, "games-dir", "", MsgFlagGamesDir)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newPathsCmd(opts))
	rootCmd.AddCommand(newDlcCmd(opts))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			out, err := config.Generate(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newPathsCmd(opts *globalOptions) *cobra.Command {
	var programIDBase string

	cmd := &cobra.Command{
		Use:   "paths",
		Short: MsgPathsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := opts.load()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printPath := func(label, value string) {
				fmt.Fprintf(w, MsgPathFormat, styles.Render("Label", label+":"), styles.Render("FilePath", value))
			}
			printPath("data", p.DataDir())
			printPath("config", p.ConfigDir())
			printPath("config file", p.ConfigFilePath())
			printPath("state", p.StateDir())
			printPath("log file", p.LogFilePath())
			printPath("games", p.GamesDir())

			if programIDBase != "" {
				id, err := parseProgramIDBase(programIDBase)
				if err != nil {
					return err
				}
				printPath("title", p.TitleDir(id))
				printPath("manifest", p.ManifestPath(id))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&programIDBase, "program-id-base", "", MsgFlagProgramIDBase)
	return cmd
}

// load resolves the configuration and the paths it configures
func (o *globalOptions) load() (*config.Config, paths.Paths, error) {
	configPath := o.configPath
	if configPath == "" {
		base, err := paths.New()
		if err != nil {
			return nil, nil, fmt.Errorf(MsgErrInitPaths, err)
		}
		configPath = base.ConfigFilePath()
	}

	var overrides map[string]interface{}
	if o.gamesDir != "" {
		overrides = map[string]interface{}{"paths.games_dir": o.gamesDir}
	}

	cfg, err := config.LoadWithOverrides(configPath, overrides)
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	p, err := paths.New(
		paths.WithGamesDir(cfg.Paths.GamesDir),
		paths.WithManifestName(cfg.AddOn.ManifestName),
	)
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	log.Debug().
		Str("config", configPath).
		Str("games", p.GamesDir()).
		Msg("Configuration loaded")
	return cfg, p, nil
}

// parseProgramIDBase accepts 1 to 16 hex digits with an optional 0x prefix
func parseProgramIDBase(s string) (uint64, error) {
	digits := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	if digits == "" || len(digits) > 16 {
		return 0, fmt.Errorf(MsgErrProgramIDBase, s)
	}
	id, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, fmt.Errorf(MsgErrProgramIDBase, s)
	}
	return id, nil
}
