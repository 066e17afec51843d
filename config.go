package cubetower

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/cubetower.yaml
var defaultConfigYAML []byte

// Config is the board configuration, loaded from YAML.
type Config struct {
	BottomCubeCount int           `yaml:"bottom_cube_count"`
	CubeSize        float64       `yaml:"cube_size"`
	CubeColors      []string      `yaml:"cube_colors"` // hex, e.g. "#e53935"
	Gesture         GestureYAML   `yaml:"gesture"`
	Tower           TowerYAML     `yaml:"tower"`
	Seed            uint64        `yaml:"seed"` // 0 = time based
	Screen          ScreenSection `yaml:"screen"`
}

// GestureYAML mirrors GestureConfig.
type GestureYAML struct {
	MinDragDistance      float64 `yaml:"min_drag_distance"`
	DirectionalThreshold float64 `yaml:"directional_threshold"`
}

// TowerYAML mirrors TowerConfig.
type TowerYAML struct {
	BottomOffset           float64 `yaml:"bottom_offset"`
	HorizontalOffsetFactor float64 `yaml:"horizontal_offset_factor"`
}

// ScreenSection is the logical screen size in pixels.
type ScreenSection struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		BottomCubeCount: 20,
		CubeSize:        48,
		CubeColors:      []string{"#e53935", "#43a047", "#1e88e5", "#fdd835"},
		Gesture:         GestureYAML{MinDragDistance: 10, DirectionalThreshold: 1.5},
		Tower:           TowerYAML{BottomOffset: 20, HorizontalOffsetFactor: 0.3},
		Screen:          ScreenSection{Width: 640, Height: 960},
	}
}

// LoadConfig loads the configuration.
// Search order: customPath -> ./configs/cubetower.yaml -> embedded default
func LoadConfig(customPath string) (Config, error) {
	cfg := DefaultConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	if data, err := os.ReadFile("configs/cubetower.yaml"); err == nil {
		local := DefaultConfig()
		if err := yaml.Unmarshal(data, &local); err == nil {
			return local, local.Validate()
		}
		logger.Warn("ignoring unparsable local config", "path", "configs/cubetower.yaml")
	}

	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse embedded config: %w", err)
	}
	return cfg, cfg.Validate()
}

// ParseConfig decodes YAML on top of the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate normalizes out-of-range values in place and reports what
// cannot be repaired.
func (c *Config) Validate() error {
	c.BottomCubeCount = max(c.BottomCubeCount, 1)
	if c.CubeSize <= 0 {
		return fmt.Errorf("%w: cube_size must be positive, got %v", ErrInvalidConfig, c.CubeSize)
	}
	if len(c.CubeColors) == 0 {
		return fmt.Errorf("%w: cube_colors is empty", ErrInvalidConfig)
	}
	if _, err := c.Colors(); err != nil {
		return err
	}
	if c.Gesture.MinDragDistance < 0 {
		c.Gesture.MinDragDistance = 0
	}
	if c.Gesture.DirectionalThreshold < 1 {
		c.Gesture.DirectionalThreshold = 1
	}
	c.Tower.BottomOffset = math.Max(0, c.Tower.BottomOffset)
	c.Tower.HorizontalOffsetFactor = math.Max(0, math.Min(1, c.Tower.HorizontalOffsetFactor))
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Screen.Width, c.Screen.Height)
	}
	return nil
}

// Colors parses CubeColors.
func (c Config) Colors() ([]Color, error) {
	out := make([]Color, 0, len(c.CubeColors))
	for _, h := range c.CubeColors {
		cc, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("%w: cube color %q: %v", ErrInvalidConfig, h, err)
		}
		out = append(out, Color{R: cc.R, G: cc.G, B: cc.B, A: 1})
	}
	return out, nil
}

// GestureConfig returns the gesture thresholds.
func (c Config) GestureConfig() GestureConfig {
	return GestureConfig{
		MinDragDistance:      c.Gesture.MinDragDistance,
		DirectionalThreshold: c.Gesture.DirectionalThreshold,
	}
}

// TowerConfig returns the tower placement policy.
func (c Config) TowerConfig() TowerConfig {
	return TowerConfig{
		BottomOffset:           c.Tower.BottomOffset,
		HorizontalOffsetFactor: c.Tower.HorizontalOffsetFactor,
	}
}
