package metadata

import "fmt"

/** @brief The built-in shading models a frame can be drawn with. */
type ShaderType int

const (
	/** @brief One Lambert intensity per face, back faces discarded. */
	SHADER_TYPE_FLAT ShaderType = iota
	/** @brief Per-vertex Lambert intensity, interpolated. */
	SHADER_TYPE_GOURAUD
	/** @brief Diffuse texture modulated by Gouraud intensity. */
	SHADER_TYPE_TEXTURED
	/** @brief Diffuse texture as sampled, no lighting. */
	SHADER_TYPE_UNLIT
)

const (
	BUILTIN_SHADER_NAME_FLAT     string = "flat"
	BUILTIN_SHADER_NAME_GOURAUD  string = "gouraud"
	BUILTIN_SHADER_NAME_TEXTURED string = "textured"
	BUILTIN_SHADER_NAME_UNLIT    string = "unlit"
)

func (st ShaderType) String() string {
	switch st {
	case SHADER_TYPE_FLAT:
		return BUILTIN_SHADER_NAME_FLAT
	case SHADER_TYPE_GOURAUD:
		return BUILTIN_SHADER_NAME_GOURAUD
	case SHADER_TYPE_TEXTURED:
		return BUILTIN_SHADER_NAME_TEXTURED
	case SHADER_TYPE_UNLIT:
		return BUILTIN_SHADER_NAME_UNLIT
	default:
		return fmt.Sprintf("shader(%d)", int(st))
	}
}

// ParseShaderType maps a built-in shader name to its type.
func ParseShaderType(name string) (ShaderType, error) {
	switch name {
	case BUILTIN_SHADER_NAME_FLAT:
		return SHADER_TYPE_FLAT, nil
	case BUILTIN_SHADER_NAME_GOURAUD:
		return SHADER_TYPE_GOURAUD, nil
	case BUILTIN_SHADER_NAME_TEXTURED:
		return SHADER_TYPE_TEXTURED, nil
	case BUILTIN_SHADER_NAME_UNLIT:
		return SHADER_TYPE_UNLIT, nil
	default:
		return SHADER_TYPE_FLAT, fmt.Errorf("unknown shader %q", name)
	}
}
