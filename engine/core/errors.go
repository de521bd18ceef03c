package core

import (
	"errors"
)

var (
	ErrApplicationQuit      = errors.New("application quit requested")
	ErrEngineNotInitialized = errors.New("engine not initialized")
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrUnknownResourceType  = errors.New("unknown resource type")
	ErrAssetNotFound        = errors.New("asset not found")
	ErrUnsupportedFormat    = errors.New("unsupported format")
	ErrMalformedModel       = errors.New("malformed model")
	ErrMalformedTexture     = errors.New("malformed texture")
	ErrMalformedMaterial    = errors.New("malformed material")
	ErrMissingMesh          = errors.New("missing mesh")
	ErrMissingTexture       = errors.New("missing texture")
	ErrUnknown              = errors.New("unknown")
)
