package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/regiongen/pkg/errors"
	"github.com/matzehuels/regiongen/pkg/history"
	"github.com/matzehuels/regiongen/pkg/pipeline"
	"github.com/matzehuels/regiongen/pkg/sink"
)

// generateFlags holds the command-line flags for the generate command.
// Only flags the user actually set override the config file.
type generateFlags struct {
	width        int
	height       int
	density      int
	seed         uint64
	workers      int
	clusters     bool
	clusterMin   int
	clusterMax   int
	spineDensity int
	solidSpine   bool
	mode         string
	spineLines   bool
	markers      bool
	markerRadius int
	formats      string
	scale        int

	output    string // output directory
	prefix    string // file name prefix
	noCache   bool
	noHistory bool
}

func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a region map",
		Long: `Generate a Voronoi region map and write the requested artifacts.

Settings are read from --config first; any flag given on the command line
overrides the file. Output files are named <prefix>-<timestamp>.<format>.`,
		Example: `  regiongen generate -n 40 --width 512 --height 512
  regiongen generate -m gradient --spine-lines --markers -f png,svg
  regiongen generate --config map.toml --seed 7 -o out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.config.Options()
			flags.apply(cmd.Flags().Changed, &opts)
			return c.runGenerate(cmd.Context(), opts, c.outputSettings(cmd.Flags().Changed, &flags))
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.width, "width", pipeline.DefaultWidth, "grid width in cells")
	f.IntVar(&flags.height, "height", pipeline.DefaultHeight, "grid height in cells")
	f.IntVarP(&flags.density, "density", "n", pipeline.DefaultDensity, "number of regions")
	f.Uint64Var(&flags.seed, "seed", pipeline.DefaultSeed, "random seed (0 selects the default)")
	f.IntVar(&flags.workers, "workers", 0, "parallel workers (0 = one per CPU)")
	f.BoolVar(&flags.clusters, "clusters", false, "group regions into MegaRegions")
	f.IntVar(&flags.clusterMin, "cluster-min", pipeline.DefaultClusterMin, "cluster band lower bound (exclusive)")
	f.IntVar(&flags.clusterMax, "cluster-max", pipeline.DefaultClusterMax, "cluster band upper bound (exclusive)")
	f.IntVar(&flags.spineDensity, "spine-density", pipeline.DefaultSpineDensity, "points sampled per spine segment")
	f.BoolVar(&flags.solidSpine, "solid-spine", false, "sample one spine point per unit of length")
	f.StringVarP(&flags.mode, "mode", "m", string(pipeline.DefaultMode), "display mode: region, cluster, gradient, pattern")
	f.BoolVar(&flags.spineLines, "spine-lines", false, "draw spines in white")
	f.BoolVar(&flags.markers, "markers", false, "mark region centres")
	f.IntVar(&flags.markerRadius, "marker-radius", pipeline.DefaultMarkerRadius, "centre marker radius")
	f.StringVarP(&flags.formats, "format", "f", "", "output format(s): png (default), json, dot, svg (comma-separated)")
	f.IntVar(&flags.scale, "scale", pipeline.DefaultScale, "PNG upscale factor")
	f.StringVarP(&flags.output, "output", "o", "", "output directory (default: current directory)")
	f.StringVar(&flags.prefix, "prefix", sink.DefaultPrefix, "output file name prefix")
	f.BoolVar(&flags.noCache, "no-cache", false, "disable the artifact cache")
	f.BoolVar(&flags.noHistory, "no-history", false, "do not record the run")

	return cmd
}

// apply copies every flag the user set onto opts.
func (g *generateFlags) apply(changed func(string) bool, opts *pipeline.Options) {
	setInt := func(name string, dst *int, v int) {
		if changed(name) {
			*dst = v
		}
	}
	setBool := func(name string, dst *bool, v bool) {
		if changed(name) {
			*dst = v
		}
	}

	setInt("width", &opts.Width, g.width)
	setInt("height", &opts.Height, g.height)
	setInt("density", &opts.Density, g.density)
	setInt("workers", &opts.Workers, g.workers)
	setInt("cluster-min", &opts.ClusterMin, g.clusterMin)
	setInt("cluster-max", &opts.ClusterMax, g.clusterMax)
	setInt("spine-density", &opts.SpineDensity, g.spineDensity)
	setInt("marker-radius", &opts.MarkerRadius, g.markerRadius)
	setInt("scale", &opts.Scale, g.scale)
	setBool("clusters", &opts.Clusters, g.clusters)
	setBool("solid-spine", &opts.SolidSpine, g.solidSpine)
	setBool("spine-lines", &opts.SpineLines, g.spineLines)
	setBool("markers", &opts.Markers, g.markers)

	if changed("seed") {
		opts.Seed = g.seed
	}
	if changed("mode") {
		opts.Mode = g.mode
	}
	if changed("format") {
		opts.Formats = parseFormats(g.formats)
	}
}

// outputSettings says where and whether results are kept.
type outputSettings struct {
	dir       string
	prefix    string
	noCache   bool
	noHistory bool
}

func (c *CLI) outputSettings(changed func(string) bool, g *generateFlags) outputSettings {
	out := outputSettings{
		dir:       c.config.Output.Dir,
		prefix:    c.config.Output.Prefix,
		noCache:   g.noCache,
		noHistory: g.noHistory,
	}
	if changed("output") || out.dir == "" {
		out.dir = g.output
	}
	if changed("prefix") || out.prefix == "" {
		out.prefix = g.prefix
	}
	if out.dir == "" {
		out.dir = "."
	}
	return out
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, out outputSettings) error {
	logger := loggerFromContext(ctx)

	if err := errors.ValidateOutputName(out.prefix); err != nil {
		return err
	}
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, out.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer runner.Close()

	logger.Debug("generating", "width", opts.Width, "height", opts.Height,
		"density", opts.Density, "seed", opts.Seed, "mode", opts.Mode)

	spinner := newSpinnerWithContext(ctx, pipeline.PhaseSeeds.Label())
	opts.Progress = func(p pipeline.Phase) { spinner.SetMessage(p.Label()) }
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(out.dir, out.prefix, time.Now(), opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Generated %dx%d map", opts.Width, opts.Height)
	printStats(result.Stats, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}

	if !out.noHistory {
		c.recordRun(ctx, opts, result, paths)
	}
	return nil
}

// writeArtifacts writes each artifact in format order and returns the paths.
func writeArtifacts(dir, prefix string, t time.Time, formats []string, artifacts map[string][]byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return paths, fmt.Errorf("no %s artifact produced", format)
		}
		path := filepath.Join(dir, sink.FileName(prefix, t, format))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// recordRun saves the run to history. Failures only warn: the files are
// already written.
func (c *CLI) recordRun(ctx context.Context, opts pipeline.Options, result *pipeline.Result, paths []string) {
	logger := loggerFromContext(ctx)

	store, err := c.newHistory(ctx)
	if err != nil {
		logger.Warn("history unavailable", "error", err)
		return
	}
	defer store.Close()

	rec := history.NewRecord(opts, result)
	rec.Artifacts = paths
	if err := store.Save(ctx, rec); err != nil {
		logger.Warn("save run failed", "error", err)
		return
	}
	printDetail("Run %s", rec.ID)
}
