package world

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/annel0/worldgen/internal/noise"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed rules.schema.json
var rulesSchemaJSON string

var rulesSchema = jsonschema.MustCompileString("rules.schema.json", rulesSchemaJSON)

// rulesFile — YAML-представление реестра
type rulesFile struct {
	Blocks []struct {
		Name   string `yaml:"name"`
		Colour []int  `yaml:"colour"`
	} `yaml:"blocks"`
	Layers []struct {
		Name    string   `yaml:"name"`
		Start   *float64 `yaml:"start"` // nil: без нижней границы
		End     *float64 `yaml:"end"`   // nil: без верхней границы
		Palette []struct {
			Block  string  `yaml:"block"`
			Weight float64 `yaml:"weight"`
		} `yaml:"palette"`
	} `yaml:"layers"`
	Depth noise.Config `yaml:"depth"`
	Data  noise.Config `yaml:"data"`
}

// LoadRulesFile читает YAML-каталог реестра с диска
func LoadRulesFile(path string) (*GameRules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rules, err := ParseRules(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// ParseRules проверяет YAML-каталог по JSON-схеме и собирает GameRules
func ParseRules(raw []byte) (*GameRules, error) {
	if err := validateRules(raw); err != nil {
		return nil, err
	}

	var file rulesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}

	blocks := make([]Block, len(file.Blocks))
	byName := make(map[string]BlockID, len(file.Blocks))
	for i, b := range file.Blocks {
		c := color.RGBA{R: uint8(b.Colour[0]), G: uint8(b.Colour[1]), B: uint8(b.Colour[2]), A: 0xFF}
		if len(b.Colour) == 4 {
			c.A = uint8(b.Colour[3])
		}
		blocks[i] = NewBlock(b.Name, c)
		byName[b.Name] = BlockID(i)
	}

	layers := make([]Layer, len(file.Layers))
	for i, l := range file.Layers {
		entries := make([]PaletteEntry, len(l.Palette))
		for j, e := range l.Palette {
			id, ok := byName[e.Block]
			if !ok {
				return nil, fmt.Errorf("%w: слой %q ссылается на %q", ErrUnknownBlock, l.Name, e.Block)
			}
			entries[j] = PaletteEntry{ID: id, Weight: e.Weight}
		}
		palette, err := NewBlockPalette(entries...)
		if err != nil {
			return nil, fmt.Errorf("слой %q: %w", l.Name, err)
		}

		layers[i] = Layer{Name: l.Name, Start: math.Inf(-1), End: math.Inf(1), Palette: palette}
		if l.Start != nil {
			layers[i].Start = *l.Start
		}
		if l.End != nil {
			layers[i].End = *l.End
		}
	}

	return NewGameRules(blocks, layers, file.Depth, file.Data)
}

func validateRules(raw []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("rules: %w", err)
	}

	// Схема проверяется над JSON-моделью документа
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	var v interface{}
	if err := json.Unmarshal(asJSON, &v); err != nil {
		return fmt.Errorf("rules: %w", err)
	}

	if err := rulesSchema.Validate(v); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	return nil
}
