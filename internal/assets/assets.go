// Package assets loads the sprite sets the terminal renderer draws the
// character and coins with. A set is described by a sprites.yaml manifest
// naming frame sequences; each frame is inline text art or a PNG that is
// rasterised to half-block cells.
package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// ManifestName is the manifest file looked up at the root of a sprite directory.
const ManifestName = "sprites.yaml"

// Sequence names every set must provide.
const (
	SeqIdle = "idle"
	SeqRun  = "run"
	SeqJump = "jump"
	SeqCoin = "coin"
)

var required = []string{SeqIdle, SeqRun, SeqJump, SeqCoin}

var (
	ErrMissingSequence = errors.New("missing sprite sequence")
	ErrBadFrame        = errors.New("bad sprite frame")
)

//go:embed sprites
var builtin embed.FS

// Frame is one sprite image as rows of terminal cells, all the same width.
type Frame []string

// Width returns the frame width in cells.
func (f Frame) Width() int {
	if len(f) == 0 {
		return 0
	}
	return runewidth.StringWidth(f[0])
}

// Height returns the frame height in cells.
func (f Frame) Height() int { return len(f) }

var mirrored = strings.NewReplacer(
	"/", `\`, `\`, "/",
	"(", ")", ")", "(",
	"<", ">", ">", "<",
	"[", "]", "]", "[",
	"{", "}", "}", "{",
	"▌", "▐", "▐", "▌",
	"◐", "◑", "◑", "◐",
)

// Mirror flips f horizontally, swapping direction-sensitive glyphs.
func (f Frame) Mirror() Frame {
	out := make(Frame, len(f))
	for i, row := range f {
		r := []rune(row)
		for a, b := 0, len(r)-1; a < b; a, b = a+1, b-1 {
			r[a], r[b] = r[b], r[a]
		}
		out[i] = mirrored.Replace(string(r))
	}
	return out
}

// Sequence is an animation: frames advanced by Speed frames per tick.
type Sequence struct {
	Name   string
	Speed  float64
	Frames []Frame
}

// At returns the frame shown on the given tick.
func (q Sequence) At(tick uint64) Frame {
	if len(q.Frames) == 0 {
		return nil
	}
	i := int(float64(tick)*q.Speed) % len(q.Frames)
	return q.Frames[i]
}

// Set is a loaded sprite set.
type Set struct {
	sequences map[string]Sequence
}

// Sequence returns the named sequence.
func (s *Set) Sequence(name string) (Sequence, bool) {
	if s == nil {
		return Sequence{}, false
	}
	q, ok := s.sequences[name]
	return q, ok
}

// Frame returns the frame of the named sequence for tick.
func (s *Set) Frame(name string, tick uint64) (Frame, bool) {
	q, ok := s.Sequence(name)
	if !ok {
		return nil, false
	}
	return q.At(tick), true
}

type manifest struct {
	Sequences map[string]sequenceSpec `yaml:"sequences"`
}

type sequenceSpec struct {
	Speed  float64     `yaml:"speed"`
	Frames []frameSpec `yaml:"frames"`
}

type frameSpec struct {
	Art    []string `yaml:"art"`
	Image  string   `yaml:"image"`
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
}

// Load reads ManifestName from fsys and builds the set. Image paths in the
// manifest are relative to the root of fsys.
func Load(ctx context.Context, fsys fs.FS) (*Set, error) {
	data, err := fs.ReadFile(fsys, ManifestName)
	if err != nil {
		return nil, fmt.Errorf("reading sprite manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing sprite manifest: %w", err)
	}

	set := &Set{sequences: make(map[string]Sequence, len(m.Sequences))}
	for name, spec := range m.Sequences {
		q := Sequence{Name: name, Speed: spec.Speed}
		for i, fspec := range spec.Frames {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			frame, err := buildFrame(fsys, fspec)
			if err != nil {
				return nil, fmt.Errorf("sequence %q frame %d: %w", name, i, err)
			}
			q.Frames = append(q.Frames, frame)
		}
		set.sequences[name] = q
	}

	for _, name := range required {
		if q, ok := set.sequences[name]; !ok || len(q.Frames) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingSequence, name)
		}
	}
	return set, nil
}

// LoadDir loads the sprite set in dir.
func LoadDir(ctx context.Context, dir string) (*Set, error) {
	return Load(ctx, os.DirFS(dir))
}

// Default returns the built-in sprite set.
func Default() (*Set, error) {
	sub, err := fs.Sub(builtin, "sprites")
	if err != nil {
		return nil, err
	}
	return Load(context.Background(), sub)
}

// LoadOrDefault loads dir, or the built-in set when dir is empty.
func LoadOrDefault(ctx context.Context, dir string) (*Set, error) {
	if dir == "" {
		return Default()
	}
	return LoadDir(ctx, dir)
}

func buildFrame(fsys fs.FS, spec frameSpec) (Frame, error) {
	switch {
	case len(spec.Art) > 0 && spec.Image != "":
		return nil, fmt.Errorf("%w: both art and image set", ErrBadFrame)
	case len(spec.Art) > 0:
		return padArt(spec.Art), nil
	case spec.Image != "":
		if spec.Width <= 0 || spec.Height <= 0 {
			return nil, fmt.Errorf("%w: image %q needs width and height", ErrBadFrame, spec.Image)
		}
		img, err := decodeImage(fsys, path.Clean(spec.Image))
		if err != nil {
			return nil, err
		}
		return Rasterize(img, spec.Width, spec.Height, nil), nil
	}
	return nil, fmt.Errorf("%w: empty frame", ErrBadFrame)
}

// padArt right-pads every row to the widest one.
func padArt(rows []string) Frame {
	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r))
	}
	out := make(Frame, len(rows))
	for i, r := range rows {
		out[i] = runewidth.FillRight(r, width)
	}
	return out
}
