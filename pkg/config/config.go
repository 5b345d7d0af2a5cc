package config

import (
	"os"

	"lintang/bearmaps/pkg/rasterer"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr" validate:"required"`
	} `yaml:"server"`
	Map struct {
		File string `yaml:"file" validate:"required"`
	} `yaml:"map"`
	Raster struct {
		Root     rasterer.Bounds `yaml:"root"`
		TileSize int             `yaml:"tile_size" validate:"gt=0"`
		MaxDepth int             `yaml:"max_depth" validate:"gte=0,lte=30"`
	} `yaml:"raster"`
	Routing struct {
		Algorithm string `yaml:"algorithm" validate:"oneof=astar dijkstra bidijkstra"`
		// MaxSettled batas vertex yang di expand per query, 0 = tanpa batas
		MaxSettled int `yaml:"max_settled" validate:"gte=0"`
	} `yaml:"routing"`
	Log struct {
		Level       string `yaml:"level" validate:"oneof=debug info warn error"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

func Default() Config {
	var cfg Config
	cfg.Server.ListenAddr = ":4567"
	cfg.Map.File = "berkeley.osm"
	cfg.Raster.Root = rasterer.DefaultRoot()
	cfg.Raster.TileSize = rasterer.TILE_SIZE
	cfg.Raster.MaxDepth = rasterer.MAX_DEPTH
	cfg.Routing.Algorithm = "astar"
	cfg.Routing.MaxSettled = 0
	cfg.Log.Level = "info"
	return cfg
}

// Load baca config yaml di path. key yang tidak ada di file pakai nilai Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	root := c.Raster.Root
	if root.ULLon >= root.LRLon || root.ULLat <= root.LRLat {
		return errors.Wrap(ErrInvalidConfig, "raster root must be upper-left to lower-right")
	}
	return nil
}
