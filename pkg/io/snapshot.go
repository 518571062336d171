package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mazegen/pkg/maze"
)

// Snapshot is a restorable copy of a generated maze.
type Snapshot struct {
	ID        uuid.UUID
	Width     int
	Height    int
	Algorithm maze.Algorithm
	Seed      uint64
	Walls     []bool
	CreatedAt time.Time
}

// snapshotNamespace scopes name-based snapshot IDs.
var snapshotNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/mazegen/snapshot"))

// NewSnapshot captures the current wall states of m. The ID is derived from
// the dimensions, algorithm, seed and walls, so the same maze always gets the
// same ID and archiving it twice updates one record.
func NewSnapshot(m *maze.Maze, seed uint64) *Snapshot {
	walls := m.Walls()
	return &Snapshot{
		ID:        SnapshotID(m.Width(), m.Height(), m.Algorithm(), seed, walls),
		Width:     m.Width(),
		Height:    m.Height(),
		Algorithm: m.Algorithm(),
		Seed:      seed,
		Walls:     walls,
		CreatedAt: time.Now().UTC(),
	}
}

// SnapshotID returns the name-based UUID of a maze.
func SnapshotID(width, height int, alg maze.Algorithm, seed uint64, walls []bool) uuid.UUID {
	name := fmt.Sprintf("%dx%d:%s:%d:%s", width, height, alg, seed, EncodeWalls(walls))
	return uuid.NewSHA1(snapshotNamespace, []byte(name))
}

// Maze rebuilds the maze. The restored maze is seeded with the snapshot's
// seed, so a later Regenerate continues deterministically.
func (s *Snapshot) Maze() (*maze.Maze, error) {
	return maze.FromWalls(s.Width, s.Height, s.Algorithm, s.Walls, maze.WithSeed(s.Seed))
}

type snapshot struct {
	ID        *uuid.UUID     `json:"id,omitempty"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Algorithm maze.Algorithm `json:"algorithm"`
	Seed      uint64         `json:"seed,omitempty"`
	Walls     string         `json:"walls"`
	CreatedAt *time.Time     `json:"created_at,omitempty"`
}

// MarshalJSON encodes walls as a compact "0"/"1" string.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshot{
		Width:     s.Width,
		Height:    s.Height,
		Algorithm: s.Algorithm,
		Seed:      s.Seed,
		Walls:     EncodeWalls(s.Walls),
	}
	if s.ID != uuid.Nil {
		out.ID = &s.ID
	}
	if !s.CreatedAt.IsZero() {
		out.CreatedAt = &s.CreatedAt
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a snapshot and checks the wall string against the
// dimensions.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	in := snapshot{Algorithm: maze.DepthFirstSearch}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	walls, err := DecodeWalls(in.Walls)
	if err != nil {
		return err
	}
	if in.Width <= 0 || in.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", maze.ErrInvalidDimensions, in.Width, in.Height)
	}
	if want := maze.WallCountFor(in.Width, in.Height); len(walls) != want {
		return fmt.Errorf("%w: got %d, want %d", maze.ErrWallCountMismatch, len(walls), want)
	}

	*s = Snapshot{
		Width:     in.Width,
		Height:    in.Height,
		Algorithm: in.Algorithm,
		Seed:      in.Seed,
		Walls:     walls,
	}
	if in.ID != nil {
		s.ID = *in.ID
	}
	if in.CreatedAt != nil {
		s.CreatedAt = *in.CreatedAt
	}
	return nil
}

// EncodeWalls packs wall states into a string of '1' (active) and '0'.
func EncodeWalls(walls []bool) string {
	var sb strings.Builder
	sb.Grow(len(walls))
	for _, w := range walls {
		if w {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// DecodeWalls is the inverse of [EncodeWalls].
func DecodeWalls(s string) ([]bool, error) {
	walls := make([]bool, len(s))
	for i := range len(s) {
		switch s[i] {
		case '1':
			walls[i] = true
		case '0':
		default:
			return nil, fmt.Errorf("wall %d: invalid state %q", i, s[i])
		}
	}
	return walls, nil
}

// WriteJSON encodes a snapshot as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(s *Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a snapshot from r. ReadJSON does not close r.
//
// It returns an error if the JSON is malformed, the dimensions are not
// positive, the algorithm is unknown, or the wall string does not match the
// dimensions. Errors from the maze package are wrapped and can be matched
// with errors.Is.
func ReadJSON(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &s, nil
}

// ExportJSON writes a snapshot to a JSON file at path.
func ExportJSON(s *Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(s, f)
}

// ImportJSON reads a snapshot from the JSON file at path.
func ImportJSON(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
