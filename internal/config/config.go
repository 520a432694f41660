package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/iburimskiy/voice-blob/internal/blob"
)

const (
	WindowWidth  = 720
	WindowHeight = 900

	// TPS matches the rate the blob springs are tuned for.
	TPS = blob.FPS

	// Blob layout
	BlobSize  = 200
	BlobInset = 20
	BlobTop   = 44

	// Controls
	ButtonWidth  = 160
	ButtonHeight = 40

	// Color picker overlay
	PickerWidth   = 240
	SliderHeight  = 28
	SliderSpacing = 12

	// DenseBlobPoints is the points count of the third demo blob.
	DenseBlobPoints = 200

	// RandomLevelEvery is how often a random level is fed when no audio
	// plays, in seconds.
	RandomLevelEvery = 1.0

	// StopDuration is how long the outer layers take to shrink on Pause.
	StopDuration = 1.0
)

// Preset is the tuning of the demo blobs. It can be loaded from a TOML file.
type Preset struct {
	MaxLevel float64    `toml:"max_level"`
	Tint     string     `toml:"tint"`
	Small    blob.Range `toml:"small"`
	Medium   blob.Range `toml:"medium"`
	Big      blob.Range `toml:"big"`
}

// Default returns the built-in preset.
func Default() Preset {
	return Preset{
		MaxLevel: 50,
		Tint:     "#FFFFFF",
		Small:    blob.Range{Min: 0.40, Max: 0.54},
		Medium:   blob.Range{Min: 0.52, Max: 0.87},
		Big:      blob.Range{Min: 0.55, Max: 1.00},
	}
}

// Load reads a preset file. Keys missing from the file keep their default.
func Load(path string) (Preset, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read preset: %w", err)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse preset %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("preset %s: %w", path, err)
	}
	return p, nil
}

// Validate checks that the preset can build a blob.
func (p Preset) Validate() error {
	if p.MaxLevel <= 0 {
		return fmt.Errorf("max_level must be positive, got %g", p.MaxLevel)
	}
	ranges := []struct {
		name string
		r    blob.Range
	}{
		{"small", p.Small},
		{"medium", p.Medium},
		{"big", p.Big},
	}
	for _, l := range ranges {
		if l.r.Min < 0 || l.r.Max < l.r.Min {
			return fmt.Errorf("%s scale range [%g, %g] is invalid", l.name, l.r.Min, l.r.Max)
		}
	}
	return nil
}
