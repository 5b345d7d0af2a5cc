package main

import (
	"context"
	"fmt"
	"os"

	"lintang/bearmaps/pkg/config"
	"lintang/bearmaps/pkg/engine/routingalgorithm"
	"lintang/bearmaps/pkg/graph"
	"lintang/bearmaps/pkg/logger"
	"lintang/bearmaps/pkg/osmparser"
	"lintang/bearmaps/pkg/rasterer"
	"lintang/bearmaps/pkg/search"
	"lintang/bearmaps/pkg/server/rest/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile    string
	mapFile    string
	logLevel   string
	maxSettled int
	algorithm  string
)

var rootCmd = &cobra.Command{
	Use:   "bearmaps",
	Short: "openstreetmap routing, directions & location search server",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "yaml config file")
	rootCmd.PersistentFlags().StringVarP(&mapFile, "file", "f", "", "openstreetmap file (.osm / .osm.pbf) buat road network graphnya")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&algorithm, "algorithm", "", "algoritma shortest path (astar, dijkstra, bidijkstra)")
	rootCmd.PersistentFlags().IntVar(&maxSettled, "max-settled", 0, "batas vertex yang di expand per shortest path query, 0 = tanpa batas")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig config file (atau default) lalu di override flag yang di set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Map.File = mapFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("algorithm") {
		cfg.Routing.Algorithm = algorithm
	}
	if flags.Changed("max-settled") {
		cfg.Routing.MaxSettled = maxSettled
	}
	if flags.Changed("listenaddr") {
		cfg.Server.ListenAddr = listenAddr
	}
	return cfg, cfg.Validate()
}

// newNavigationService load map ke graph & trie, lalu rakit service nya.
func newNavigationService(ctx context.Context, cfg config.Config, log *zap.Logger) (*service.NavigationService, error) {
	g := graph.NewGraph()
	trie := search.NewTrie()

	osmParser := osmparser.NewOSMParser(g, trie, osmparser.WithLogger(log))
	if err := osmParser.Parse(ctx, cfg.Map.File); err != nil {
		return nil, fmt.Errorf("load map %s: %w", cfg.Map.File, err)
	}

	routing := routingalgorithm.NewRouteAlgorithm(g,
		routingalgorithm.WithAlgorithm(routingalgorithm.Algorithm(cfg.Routing.Algorithm)),
		routingalgorithm.WithMaxSettled(cfg.Routing.MaxSettled),
		routingalgorithm.WithLogger(log))
	raster := rasterer.NewRasterer(cfg.Raster.Root, cfg.Raster.TileSize, cfg.Raster.MaxDepth)

	return service.NewNavigationService(g, routing, trie, raster, log), nil
}

func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}
