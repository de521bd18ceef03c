package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/renderer/metadata"
)

// MaterialLoader reads Wavefront MTL files into *metadata.MaterialLibrary resources.
type MaterialLoader struct{}

func (ml *MaterialLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	library, err := ParseMTL(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return metadata.NewResource(metadata.ResourceTypeMaterial, name, path, uint64(info.Size()), library), nil
}

/**
 * @brief Parses a Wavefront MTL material library. Only the statements the
 * rasterizer uses are read: newmtl, Kd and map_Kd.
 */
func ParseMTL(r io.Reader) (*metadata.MaterialLibrary, error) {
	scanner := bufio.NewScanner(r)
	library := &metadata.MaterialLibrary{}
	var current *metadata.MaterialConfig

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		fields := strings.Fields(line)
		key, values := fields[0], fields[1:]
		if key == "newmtl" {
			if len(values) == 0 {
				return nil, fmt.Errorf("%w: newmtl without a name", core.ErrMalformedMaterial)
			}
			current = &metadata.MaterialConfig{
				Name:          strings.Join(values, " "),
				DiffuseColour: 0xFFFFFF,
			}
			library.Materials = append(library.Materials, current)
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("%w: %q before newmtl", core.ErrMalformedMaterial, key)
		}

		// Parse each field based on the key
		switch key {
		case "Kd":
			if len(values) != 3 {
				return nil, fmt.Errorf("%w: invalid Kd, expected 3 values: %s", core.ErrMalformedMaterial, line)
			}
			var rgb [3]uint8
			for i, v := range values {
				f, err := strconv.ParseFloat(v, 32)
				if err != nil || !inRange(float32(f)) {
					return nil, fmt.Errorf("%w: invalid Kd value: %s", core.ErrMalformedMaterial, v)
				}
				rgb[i] = uint8(f*255 + 0.5)
			}
			current.DiffuseColour = uint32(rgb[0])<<16 | uint32(rgb[1])<<8 | uint32(rgb[2])
		case "map_Kd":
			current.DiffuseMapName = mapName(values)
		default:
			core.LogDebug("Unknown key '%s' found in material file. Skipping...", key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	// Perform validation
	for _, material := range library.Materials {
		if err := validateMaterial(material); err != nil {
			return nil, err
		}
	}
	return library, nil
}

// mapName drops texture options (-bm 1.0, ...) and keeps the file name.
func mapName(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

func validateMaterial(material *metadata.MaterialConfig) error {
	if material.DiffuseMapName != "" && !isValidTextureName(material.DiffuseMapName) {
		return fmt.Errorf("%w: invalid diffuse map name: %s", core.ErrMalformedMaterial, material.DiffuseMapName)
	}
	return nil
}

// Check if a float32 value is within [0.0, 1.0]
func inRange(value float32) bool {
	return value >= 0.0 && value <= 1.0
}

// Texture maps must point at a format one of the texture loaders reads.
func isValidTextureName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tga", ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp":
		return true
	default:
		return false
	}
}

func (ml *MaterialLoader) Unload(resource *metadata.Resource) error {
	if resource == nil {
		return fmt.Errorf("unload material: %w", core.ErrUnknownResourceType)
	}
	resource.Data = nil
	return nil
}
