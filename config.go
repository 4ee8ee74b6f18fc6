package vantage

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Config is the TOML-backed viewer configuration. Every field has a
// default, and a missing config file just means defaults; only a file
// that exists but fails to parse is an error.
type Config struct {
	Window WindowConfig `toml:"window"`
	Assets AssetsConfig `toml:"assets"`
	Camera CameraConfig `toml:"camera"`
	Debug  bool         `toml:"debug"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type AssetsConfig struct {
	Dir   string `toml:"dir"`
	Scene string `toml:"scene"`
	Font  string `toml:"font"`
}

type CameraConfig struct {
	Rate   float64 `toml:"rate"`
	Height float32 `toml:"height"`
	Fov    float32 `toml:"fov"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Vantage",
		},
		Assets: AssetsConfig{
			Dir:   "assets",
			Scene: "assets/ruins/scene.gltf",
			Font:  "assets/fonts/PlayfairDisplay-Regular.ttf",
		},
		Camera: CameraConfig{
			Rate:   1.5,
			Height: 1.8,
			Fov:    0.3926991, // pi/8
		},
	}
}

func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}
