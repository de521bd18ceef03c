package metadata

import "github.com/google/uuid"

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Files the asset manager does not know how to load. */
	ResourceTypeNone ResourceType = iota
	/** @brief Wavefront OBJ model resource type. */
	ResourceTypeModel
	/** @brief Truevision TGA texture resource type. */
	ResourceTypeTexture
	/** @brief Generic image resource type (png, jpeg, bmp, tiff, webp). */
	ResourceTypeImage
	/** @brief Wavefront MTL material resource type. */
	ResourceTypeMaterial
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeModel:
		return "model"
	case ResourceTypeTexture:
		return "texture"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeMaterial:
		return "material"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief Unique identifier, regenerated every time the file is loaded. */
	ID uuid.UUID
	/** @brief The type of the loader which handled this resource. */
	Type ResourceType
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource file in bytes. */
	DataSize uint64
	/** @brief The resource data: *Model, *Texture or *MaterialConfig. */
	Data interface{}
}

func NewResource(resourceType ResourceType, name, fullPath string, size uint64, data interface{}) *Resource {
	return &Resource{
		ID:       uuid.New(),
		Type:     resourceType,
		Name:     name,
		FullPath: fullPath,
		DataSize: size,
		Data:     data,
	}
}
