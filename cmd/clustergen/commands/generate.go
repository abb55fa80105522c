package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/teranos/clustergen/config"
	"github.com/teranos/clustergen/generate"
	"github.com/teranos/clustergen/logger"
	"github.com/teranos/clustergen/progress"
)

const defaultSeed = generate.DefaultSeed

type generateOptions struct {
	seed uint64
	json bool
}

// runGenerate is the whole pipeline: load config, sample clusters, write
// <outDir>/<name>.parquet. Any failure aborts the run before later stages.
func runGenerate(cmd *cobra.Command, configPath, outDir string, global *globalOptions, opts *generateOptions) error {
	runID := uuid.NewString()
	log := logger.RunLogger("clustergen", runID)

	var emitter progress.Emitter
	if opts.json {
		emitter = progress.NewJSONEmitter(cmd.OutOrStdout(), runID)
	} else {
		emitter = progress.NewCLIEmitter(cmd.OutOrStdout(), global.verbosity)
	}

	// The CLI prints the returned error itself; only JSON consumers need
	// it as an event.
	fail := func(stage string, err error) error {
		log.Debugw("Run failed", logger.FieldStage, stage, logger.FieldError, err)
		if opts.json {
			emitter.EmitError(stage, err)
		}
		return err
	}

	emitter.EmitStage("config", "loading "+configPath)
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fail("config", err)
	}
	if unknown, err := config.UnknownKeys(configPath); err == nil && len(unknown) > 0 {
		log.Warnw("Ignoring unknown config keys", "keys", unknown, logger.FieldFile, configPath)
		emitter.EmitInfo(fmt.Sprintf("ignoring unknown config keys: %v", unknown))
	}
	log.Debugw("Config loaded",
		logger.FieldFile, configPath,
		"name", cfg.Name,
		logger.FieldCount, cfg.ClusterCount,
		logger.FieldDimensions, cfg.DimCount)

	emitter.EmitStage("generate", fmt.Sprintf("sampling %d clusters in %d dimensions", cfg.ClusterCount, cfg.DimCount))
	gen := generate.New(generate.NewSource(opts.seed), log.Named("generate").With(logger.FieldSeed, opts.seed),
		generate.WithEmitter(emitter),
		generate.WithTrace(logger.ShouldLogTrace(global.verbosity)))
	ds, err := gen.Run(cfg)
	if err != nil {
		return fail("generate", err)
	}

	outPath := cfg.OutputPath(outDir)
	emitter.EmitStage("write", outPath)
	if err := ds.WriteParquet(outPath); err != nil {
		return fail("write", err)
	}
	summary := ds.Summary()
	log.Infow("Dataset written",
		logger.FieldPath, outPath,
		logger.FieldRows, summary.Rows,
		logger.FieldColumns, len(summary.Columns))

	emitter.EmitComplete(map[string]interface{}{
		"file":     outPath,
		"rows":     summary.Rows,
		"columns":  len(summary.Columns),
		"clusters": summary.ClusterCount,
		"seed":     opts.seed,
	})
	return nil
}
