package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teranos/clustergen/errors"
	"github.com/teranos/clustergen/logger"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity int
	logJSON   bool
	theme     string
}

// NewRootCmd builds the clustergen command tree. The root command itself
// runs generation: clustergen <config.toml> <output_dir>.
func NewRootCmd() *cobra.Command {
	global := &globalOptions{}
	gen := &generateOptions{}

	root := &cobra.Command{
		Use:   "clustergen <config.toml> <output_dir>",
		Short: "Generate synthetic labeled clustering datasets",
		Long: `clustergen: synthetic Gaussian clusters for benchmarking clustering algorithms

Reads a TOML configuration, samples cluster_count axis-aligned Gaussian
clusters in dim_count dimensions and writes <output_dir>/<name>.parquet with
columns ax0..ax{dim_count-1} and cluster.

The run is seeded (default 42): the same configuration always produces a
byte-identical file.

Examples:
  clustergen config/clusters_100_5.toml ./datasets       # Generate a dataset
  clustergen -v config/clusters_100_5.toml ./datasets    # ... with progress
  clustergen score ./datasets/clusters_100_5.parquet     # Silhouette score
  clustergen config show config/clusters_100_5.toml      # Show parsed config`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.SetTheme(global.theme)
			if err := logger.InitializeWithWriter(cmd.ErrOrStderr(), global.logJSON, global.verbosity); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			logger.Debugw("Logger initialized",
				logger.FieldComponent, cmd.Name(),
				"verbosity", logger.LevelName(global.verbosity))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], args[1], global, gen)
		},
	}

	root.PersistentFlags().CountVarP(&global.verbosity, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	root.PersistentFlags().BoolVar(&global.logJSON, "log-json", false, "Emit logs as JSON instead of console text")
	root.PersistentFlags().StringVar(&global.theme, "log-theme", "everforest", "Console log colors: everforest, gruvbox")
	root.Flags().Uint64Var(&gen.seed, "seed", defaultSeed, "Random seed; the same seed and config reproduce the same file")
	root.Flags().BoolVar(&gen.json, "json", false, "Emit progress as JSON lines on stdout")

	root.AddCommand(newScoreCmd(global))
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// PrintError writes err and any attached hints. With --log-json the error
// goes through the logger as one structured line instead.
func PrintError(w io.Writer, err error) {
	if logger.JSONOutput {
		logger.Errorw("Command failed",
			logger.FieldError, err.Error(),
			"hints", errors.GetAllHints(err))
		logger.Cleanup()
		return
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}
