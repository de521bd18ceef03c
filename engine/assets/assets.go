package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/tinyrender/engine/assets/loaders"
	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/renderer/metadata"
)

// Pending reload notifications beyond this many are dropped until drained.
const reloadQueueSize = 64

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

/**
 * @brief Indexes the asset directory, loads assets through the loader
 * registered for their type and, when watching is enabled, reports files
 * that change on disk so they can be reloaded between frames.
 */
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	reloads  chan string
}

func NewAssetManager() (*AssetManager, error) {
	am := &AssetManager{
		assets:  make(map[string]AssetInfo),
		loaders: make(map[metadata.ResourceType]Loader),
		reloads: make(chan string, reloadQueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	// Register loaders
	am.registerLoader(metadata.ResourceTypeModel, &loaders.ModelLoader{})
	am.registerLoader(metadata.ResourceTypeTexture, &loaders.TextureLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})
	am.registerLoader(metadata.ResourceTypeMaterial, &loaders.MaterialLoader{})
	return am, nil
}

/**
 * @brief Indexes every asset under assetsDir and, if watch is set, starts
 * watching the directory tree for changes.
 */
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	info, err := os.Stat(assetsDir)
	if err != nil {
		return fmt.Errorf("assets directory %s: %w", assetsDir, core.ErrAssetNotFound)
	}
	if !info.IsDir() {
		return fmt.Errorf("assets directory %s is not a directory: %w", assetsDir, core.ErrInvalidConfig)
	}
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.root = root

	if watch {
		fsWatch, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		am.fsnotify = fsWatch
		go am.start()
	}

	if err := am.addRecursive(am.root); err != nil {
		return err
	}
	core.LogDebug("Asset manager indexed %d assets under %s (watch=%v).", am.Count(), am.root, watch)
	return nil
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return am.watchRecursive(name, false)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Count returns the number of indexed assets.
func (am *AssetManager) Count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Resolve maps a name to an absolute file path. Paths that exist relative
// to the working directory are kept, anything else is looked up under the
// assets directory.
func (am *AssetManager) Resolve(name string) string {
	path := name
	if !filepath.IsAbs(name) && am.root != "" {
		if _, err := os.Stat(name); err != nil {
			path = filepath.Join(am.root, name)
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(name string, params interface{}) (*metadata.Resource, error) {
	path := am.Resolve(name)
	resourceType := determineAssetType(path)
	if resourceType == metadata.ResourceTypeNone {
		return nil, fmt.Errorf("%s: %w", path, core.ErrUnknownResourceType)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", path, core.ErrAssetNotFound)
	}

	loader, loaderExists := am.loaders[resourceType]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type %s: %w", resourceType, core.ErrUnknownResourceType)
	}
	resource, err := loader.Load(path, resourceType, params)
	if err != nil {
		return nil, err
	}

	// Update the loaded time
	am.mutex.Lock()
	am.assets[path] = AssetInfo{Path: path, Type: resourceType, LastLoaded: time.Now()}
	am.mutex.Unlock()

	core.LogDebug("Loaded %s %s (%s).", resourceType, path, resource.ID)
	return resource, nil
}

func (am *AssetManager) UnloadAsset(resource *metadata.Resource) error {
	if resource == nil {
		return fmt.Errorf("unload: %w", core.ErrUnknownResourceType)
	}
	loader, ok := am.loaders[resource.Type]
	if !ok {
		return fmt.Errorf("no loader registered for asset type %s: %w", resource.Type, core.ErrUnknownResourceType)
	}
	return loader.Unload(resource)
}

// LoadModel loads a Wavefront OBJ model.
func (am *AssetManager) LoadModel(name string) (*metadata.Model, error) {
	resource, err := am.LoadAsset(name, nil)
	if err != nil {
		return nil, err
	}
	model, ok := resource.Data.(*metadata.Model)
	if !ok {
		return nil, fmt.Errorf("%s is a %s, not a model: %w", name, resource.Type, core.ErrUnknownResourceType)
	}
	return model, nil
}

// LoadTexture loads a TGA texture or any supported image as a texture.
func (am *AssetManager) LoadTexture(name string, params *metadata.ImageResourceParams) (*metadata.Texture, error) {
	resource, err := am.LoadAsset(name, params)
	if err != nil {
		return nil, err
	}
	texture, ok := resource.Data.(*metadata.Texture)
	if !ok {
		return nil, fmt.Errorf("%s is a %s, not a texture: %w", name, resource.Type, core.ErrUnknownResourceType)
	}
	return texture, nil
}

// LoadMaterialLibrary loads a Wavefront MTL material library.
func (am *AssetManager) LoadMaterialLibrary(name string) (*metadata.MaterialLibrary, error) {
	resource, err := am.LoadAsset(name, nil)
	if err != nil {
		return nil, err
	}
	library, ok := resource.Data.(*metadata.MaterialLibrary)
	if !ok {
		return nil, fmt.Errorf("%s is a %s, not a material library: %w", name, resource.Type, core.ErrUnknownResourceType)
	}
	return library, nil
}

// Reloads delivers the paths of indexed assets that changed on disk.
func (am *AssetManager) Reloads() <-chan string {
	return am.reloads
}

// DrainReloads returns every pending changed path once, without blocking.
func (am *AssetManager) DrainReloads() []string {
	seen := map[string]bool{}
	var paths []string
	for {
		select {
		case p := <-am.reloads:
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		default:
			return paths
		}
	}
}

// Shutdown stops the watcher goroutine, if any.
func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	if am.fsnotify == nil {
		return nil
	}
	close(am.done)
	<-am.stopped
	return nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name, false)
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if am.handleFileEvent(e.Name) {
					am.notify(e.Name)
				}
			}
			// Can't stat a deleted entry, so just try to remove it from the watch list.
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) notify(path string) {
	select {
	case am.reloads <- filepath.Clean(path):
	default:
		core.LogWarn("Reload queue full, dropping change of %s", path)
	}
}

// watchRecursive indexes all files under the given directory and, when
// watching, adds every directory to the watch list.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if am.fsnotify == nil {
				return nil
			}
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file. Reports whether the file
// is an asset.
func (am *AssetManager) handleFileEvent(path string) bool {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	path = filepath.Clean(path)
	info := am.assets[path]
	info.Path = path
	info.Type = assetType
	am.assets[path] = info
	return true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}

// Lookup returns the index entry of an asset.
func (am *AssetManager) Lookup(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[am.Resolve(name)]
	return info, ok
}

func determineAssetType(path string) metadata.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tga":
		return metadata.ResourceTypeTexture
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp":
		return metadata.ResourceTypeImage
	case ".mtl":
		return metadata.ResourceTypeMaterial
	case ".obj":
		return metadata.ResourceTypeModel
	default:
		return metadata.ResourceTypeNone
	}
}
