package cache

// LayoutKeyOpts captures the placement options that influence a layout,
// so different option sets never share a cache entry.
type LayoutKeyOpts struct {
	Padding float64 `json:"padding"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Clamp   bool    `json:"clamp"`
}

// ArtifactKeyOpts captures the render options that influence an artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Ghosts   bool    `json:"ghosts"`
	Grid     float64 `json:"grid"`
	Scale    float64 `json:"scale"`
	FontSize float64 `json:"font_size"`
}

// LayoutKey generates a key for a placement result. sceneHash is the content
// hash of the normalized scene.
func LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

// ArtifactKey generates a key for a rendered artifact. layoutHash is the
// content hash of the layout document.
func ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
