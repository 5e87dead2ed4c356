package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"
)

func TestDefaultSet(t *testing.T) {
	set, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	for _, name := range required {
		q, ok := set.Sequence(name)
		if !ok || len(q.Frames) == 0 {
			t.Errorf("sequence %q missing", name)
		}
		if q.Speed <= 0 {
			t.Errorf("sequence %q speed = %v", name, q.Speed)
		}
	}

	idle, _ := set.Sequence(SeqIdle)
	for i, f := range idle.Frames {
		if f.Height() != 3 || f.Width() != 3 {
			t.Errorf("idle frame %d is %dx%d, want 3x3", i, f.Width(), f.Height())
		}
	}
}

func TestSequenceAt(t *testing.T) {
	q := Sequence{Speed: 0.25, Frames: []Frame{{"a"}, {"b"}}}
	tests := []struct {
		tick uint64
		want string
	}{
		{0, "a"},
		{3, "a"},
		{4, "b"},
		{7, "b"},
		{8, "a"},
	}
	for _, tt := range tests {
		if got := q.At(tt.tick); got[0] != tt.want {
			t.Errorf("At(%d) = %q, want %q", tt.tick, got[0], tt.want)
		}
	}
	if (Sequence{}).At(5) != nil {
		t.Error("empty sequence should have no frame")
	}
}

func TestFrameMirror(t *testing.T) {
	f := Frame{" o_", " |\\", "< \\"}
	want := Frame{"_o ", "/| ", "/ >"}
	if got := f.Mirror(); !reflect.DeepEqual(got, want) {
		t.Errorf("Mirror() = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(f.Mirror().Mirror(), f) {
		t.Error("mirroring twice is not the identity")
	}
}

func TestPadArt(t *testing.T) {
	got := padArt([]string{"ab", "abcd", ""})
	want := Frame{"ab  ", "abcd", "    "}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("padArt = %q, want %q", got, want)
	}
}

// topHalfPNG is a size x size image whose top half is opaque.
func topHalfPNG(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size/2; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRasterize(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(topHalfPNG(t, 4)))
	if err != nil {
		t.Fatal(err)
	}
	got := Rasterize(img, 2, 1, nil)
	if want := (Frame{"▀▀"}); !reflect.DeepEqual(got, want) {
		t.Errorf("Rasterize = %q, want %q", got, want)
	}

	got = Rasterize(img, 4, 2, nil)
	if want := (Frame{"████", "    "}); !reflect.DeepEqual(got, want) {
		t.Errorf("Rasterize 4x2 = %q, want %q", got, want)
	}
	if Rasterize(img, 0, 1, nil) != nil {
		t.Error("zero-size raster should be nil")
	}
}

const pngManifest = `
sequences:
  idle:
    speed: 0.1
    frames:
      - image: hero.png
        width: 2
        height: 1
  run:
    frames:
      - art: ['>']
  jump:
    frames:
      - art: ['^']
  coin:
    frames:
      - art: ['o']
`

func TestLoadDirWithImage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(pngManifest), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "hero.png"), topHalfPNG(t, 8), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	f, ok := set.Frame(SeqIdle, 0)
	if !ok || !reflect.DeepEqual(f, Frame{"▀▀"}) {
		t.Errorf("idle frame = %q", f)
	}
	if _, ok := set.Frame("swim", 0); ok {
		t.Error("unknown sequence reported present")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		files fstest.MapFS
		want  error
	}{
		{
			name: "missing coin",
			files: fstest.MapFS{ManifestName: {Data: []byte(`
sequences:
  idle: {frames: [{art: ['i']}]}
  run: {frames: [{art: ['r']}]}
  jump: {frames: [{art: ['j']}]}
`)}},
			want: ErrMissingSequence,
		},
		{
			name: "image without size",
			files: fstest.MapFS{ManifestName: {Data: []byte(`
sequences:
  idle: {frames: [{image: a.png}]}
`)}},
			want: ErrBadFrame,
		},
		{
			name: "empty frame",
			files: fstest.MapFS{ManifestName: {Data: []byte(`
sequences:
  idle: {frames: [{}]}
`)}},
			want: ErrBadFrame,
		},
		{
			name:  "no manifest",
			files: fstest.MapFS{},
			want:  os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.files)
			if !errors.Is(err, tt.want) {
				t.Errorf("Load error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fsys := fstest.MapFS{ManifestName: {Data: []byte(pngManifest)}}
	if _, err := Load(ctx, fsys); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	set, err := LoadOrDefault(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := set.Frame(SeqCoin, 10); !ok {
		t.Error("default set has no coin")
	}
}
