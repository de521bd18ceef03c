package metadata

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

/**
 * @brief Material configuration typically loaded from
 * a file or created in code to load a material from.
 */
type MaterialConfig struct {
	/** @brief The name of the material. */
	Name string
	/** @brief The packed 0xRRGGBB diffuse colour of the material. */
	DiffuseColour uint32
	/** @brief The diffuse map file name, relative to the material file. */
	DiffuseMapName string
}

/**
 * @brief Returns the default material: plain white, no maps.
 */
func DefaultMaterial() *MaterialConfig {
	return &MaterialConfig{
		Name:          DefaultMaterialName,
		DiffuseColour: 0xFFFFFF,
	}
}

/**
 * @brief A library of materials, as found in one material file.
 */
type MaterialLibrary struct {
	Materials []*MaterialConfig
}

// Get returns the named material, or nil.
func (ml *MaterialLibrary) Get(name string) *MaterialConfig {
	for _, mat := range ml.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// Select returns the named material, falling back to First when the
// name is empty or unknown.
func (ml *MaterialLibrary) Select(name string) *MaterialConfig {
	if mat := ml.Get(name); mat != nil {
		return mat
	}
	return ml.First()
}

// First returns the first material of the library, or the default one.
func (ml *MaterialLibrary) First() *MaterialConfig {
	if len(ml.Materials) == 0 {
		return DefaultMaterial()
	}
	return ml.Materials[0]
}
