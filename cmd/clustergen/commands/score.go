package commands

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/clustergen/dataset"
	"github.com/teranos/clustergen/display"
	"github.com/teranos/clustergen/logger"
	"github.com/teranos/clustergen/score"
)

type scoreOptions struct {
	workers      int
	nearestPoint bool
}

func newScoreCmd(global *globalOptions) *cobra.Command {
	opts := &scoreOptions{}
	cmd := &cobra.Command{
		Use:   "score <dataset.parquet>",
		Short: "Compute the silhouette score of a generated dataset",
		Long: `Read a dataset written by clustergen (or any Parquet file with DOUBLE axis
columns and an integer cluster column) and print its mean silhouette
coefficient. Values close to 1 mean compact, well separated clusters.

By default b(i) is the smallest mean distance from a point to another
cluster and points in singleton clusters score 0, as in common libraries.
--nearest-point instead takes b(i) as the distance to the closest point of
any other cluster (singletons then score 1). That reproduces the scores of
the earlier standalone silhouette tool, which are lower for every cluster
with more than one point.

The computation is quadratic in the number of rows.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, args[0], global, opts)
		},
	}
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Concurrent scoring tasks (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&opts.nearestPoint, "nearest-point", false, "Measure separation by the nearest point of another cluster")
	cmd.Flags().Bool("json", false, "Output the report as JSON")
	return cmd
}

func runScore(cmd *cobra.Command, path string, global *globalOptions, opts *scoreOptions) error {
	log := logger.ComponentLogger("score")

	ds, err := dataset.ReadParquet(path)
	if err != nil {
		return err
	}
	summary := ds.Summary()
	log.Infow("Dataset loaded",
		logger.FieldPath, path,
		logger.FieldRows, summary.Rows,
		logger.FieldDimensions, ds.Dims(),
		logger.FieldCount, summary.ClusterCount)
	if logger.ShouldLogTrace(global.verbosity) {
		for _, b := range ds.Blocks() {
			log.Debugw("Cluster block", logger.FieldCluster, b.Cluster, "start", b.Start, logger.FieldRows, b.Rows)
		}
	}

	method := score.MeanDistance
	if opts.nearestPoint {
		method = score.NearestPoint
	}
	report, err := score.NewScorer(opts.workers, log, score.WithMethod(method)).Silhouette(cmd.Context(), ds)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(out, report)
	}

	fmt.Fprintf(out, "Silhouette Score: %v\n", report.Score)
	if global.verbosity < 1 {
		return nil
	}

	labels := make([]int64, 0, len(report.PerCluster))
	for label := range report.PerCluster {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	data := pterm.TableData{{"cluster", "silhouette"}}
	for _, label := range labels {
		data = append(data, []string{fmt.Sprintf("%d", label), fmt.Sprintf("%.4f", report.PerCluster[label])})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(out).Render()
}
