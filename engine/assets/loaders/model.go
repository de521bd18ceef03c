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
	"github.com/spaghettifunk/tinyrender/engine/math"
	"github.com/spaghettifunk/tinyrender/engine/renderer/metadata"
)

// ModelLoader reads Wavefront OBJ files into *metadata.Model resources.
type ModelLoader struct{}

func (ml *ModelLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	model, err := ParseOBJ(file, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return metadata.NewResource(metadata.ResourceTypeModel, name, path, uint64(info.Size()), model), nil
}

func (ml *ModelLoader) Unload(resource *metadata.Resource) error {
	if resource == nil {
		return fmt.Errorf("unload model: %w", core.ErrUnknownResourceType)
	}
	resource.Data = nil
	return nil
}

/**
 * @brief Parses Wavefront OBJ geometry.
 *
 * Supports v, vt, vn and f statements plus mtllib and the first usemtl.
 * Face indices are 1-based;
 * negative indices count back from the last element defined so far.
 * Polygons with more than three corners are fan-triangulated. Every other
 * statement is ignored.
 */
func ParseOBJ(r io.Reader, name string) (*metadata.Model, error) {
	model := &metadata.Model{Name: name}
	scanner := bufio.NewScanner(r)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3, 3)
			if err != nil {
				return nil, objError(lineNumber, "vertex", err)
			}
			model.Verts = append(model.Verts, v)
		case "vt":
			vt, err := parseFloats(fields[1:], 1, 2)
			if err != nil {
				return nil, objError(lineNumber, "texture coordinate", err)
			}
			model.UVs = append(model.UVs, vt)
		case "vn":
			vn, err := parseFloats(fields[1:], 3, 3)
			if err != nil {
				return nil, objError(lineNumber, "normal", err)
			}
			model.Normals = append(model.Normals, vn)
		case "f":
			if len(fields) < 4 {
				return nil, objError(lineNumber, "face", fmt.Errorf("need at least 3 corners, got %d", len(fields)-1))
			}
			corners := make([]metadata.FaceCorner, 0, len(fields)-1)
			for _, f := range fields[1:] {
				c, err := parseCorner(f, model)
				if err != nil {
					return nil, objError(lineNumber, "face", err)
				}
				corners = append(corners, c)
			}
			for i := 1; i+1 < len(corners); i++ {
				model.Faces = append(model.Faces, [3]metadata.FaceCorner{corners[0], corners[i], corners[i+1]})
			}
		case "mtllib":
			if len(fields) > 1 {
				model.MaterialLib = strings.Join(fields[1:], " ")
			}
		case "usemtl":
			// One material per mesh; later switches are ignored.
			if len(fields) > 1 && model.MaterialName == "" {
				model.MaterialName = strings.Join(fields[1:], " ")
			}
		default:
			// o, g, s and friends carry nothing the rasterizer needs.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(model.Faces) == 0 {
		return nil, fmt.Errorf("%w: no faces", core.ErrMalformedModel)
	}
	return model, nil
}

func objError(line int, what string, err error) error {
	return fmt.Errorf("%w: line %d: invalid %s: %v", core.ErrMalformedModel, line, what, err)
}

// parseFloats parses between min and want values; missing values up to want are zero.
func parseFloats(fields []string, min, want int) (math.Vector[float32], error) {
	if len(fields) < min {
		return math.Vector[float32]{}, fmt.Errorf("expected %d values, got %d", want, len(fields))
	}
	out := math.NewVectorZero[float32](want)
	for i := 0; i < want && i < len(fields); i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vector[float32]{}, err
		}
		out.Set(i, float32(f))
	}
	return out, nil
}

// parseCorner parses "v", "v/t", "v//n" or "v/t/n".
func parseCorner(field string, model *metadata.Model) (metadata.FaceCorner, error) {
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return metadata.FaceCorner{}, fmt.Errorf("corner %q has too many parts", field)
	}
	corner := metadata.FaceCorner{T: -1, N: -1}

	var err error
	if corner.V, err = resolveIndex(parts[0], len(model.Verts)); err != nil {
		return corner, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if corner.T, err = resolveIndex(parts[1], len(model.UVs)); err != nil {
			return corner, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if corner.N, err = resolveIndex(parts[2], len(model.Normals)); err != nil {
			return corner, err
		}
	}
	return corner, nil
}

// resolveIndex turns a 1-based or negative OBJ index into a 0-based one.
func resolveIndex(s string, count int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx += count
	default:
		return 0, fmt.Errorf("index 0 is not valid")
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("index %s out of range (%d defined)", s, count)
	}
	return idx, nil
}
