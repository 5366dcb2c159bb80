package cmd

import (
	"fmt"

	"github.com/jsphweid/fretnot/chord"
	"github.com/jsphweid/fretnot/config"
	"github.com/jsphweid/fretnot/constants"
	"github.com/jsphweid/fretnot/fretboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fretnot",
	Short: "Names guitar chords and finds fingerings for them",
	Long: `fretnot reads a six string fret selection and names the chord it makes,
or goes the other way and places a named chord on the neck.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger.Debug("config loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", constants.GetConfigPath(), "path to a yaml config file")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func newEngine() *chord.Engine {
	mapper := fretboard.NewMapper(fretboard.StandardTuning(), cfg.Engine.MaxFret)
	return chord.New(
		chord.WithMapper(mapper),
		chord.WithWeights(cfg.Weights),
		chord.WithLogger(logger),
	)
}
