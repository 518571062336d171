package cache

// Keyer builds cache keys. Implementations must be deterministic: equal
// inputs always produce equal keys.
type Keyer interface {
	// MazeKey addresses a maze snapshot.
	MazeKey(opts MazeKeyOpts) string

	// ArtifactKey addresses a rendered output of the maze with the given
	// content hash.
	ArtifactKey(mazeHash string, opts ArtifactKeyOpts) string
}

// MazeKeyOpts identifies a generated maze. Together with the seed these
// fields fully determine the wall layout.
type MazeKeyOpts struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Algorithm string `json:"algorithm"`
	Seed      uint64 `json:"seed"`
}

// ArtifactKeyOpts identifies one rendering of a maze.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Style  string `json:"style,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// MazeKey returns "maze:<sha256>".
func (DefaultKeyer) MazeKey(opts MazeKeyOpts) string {
	return hashKey("maze", opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(mazeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", mazeHash, opts)
}
