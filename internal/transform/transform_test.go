package transform

import (
	"image"
	"image/color"
	"testing"
)

// createFilledImage creates a width x height image filled with p
func createFilledImage(width, height int, p Pixel) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{p.R, p.G, p.B, p.A})
		}
	}
	return img
}

func pixelAt(img *image.NRGBA, x, y int) Pixel {
	c := img.NRGBAAt(x, y)
	return Pixel{R: c.R, G: c.G, B: c.B, A: c.A}
}

func TestNormalizeAlpha_Identity(t *testing.T) {
	fn := NormalizeAlpha()
	pixels := []Pixel{
		{0, 0, 0, 0},
		{255, 255, 255, 255},
		{12, 34, 56, 78},
		{255, 0, 0, 128},
	}
	for _, p := range pixels {
		if got := fn(p, 3, 4, 10, 10); got != p {
			t.Errorf("NormalizeAlpha(%v) = %v, want unchanged", p, got)
		}
	}
}

func TestNormalizeAlpha_Idempotent(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}

	once, _ := Apply(src, NormalizeAlpha(), nil)
	twice, changed := Apply(once, NormalizeAlpha(), nil)

	if changed != 0 {
		t.Errorf("second pass changed %d pixels, want 0", changed)
	}
	for i := range once.Pix {
		if once.Pix[i] != twice.Pix[i] || once.Pix[i] != src.Pix[i] {
			t.Fatalf("Pix[%d]: src=%d once=%d twice=%d", i, src.Pix[i], once.Pix[i], twice.Pix[i])
		}
	}
}

func TestNearWhiteToTransparent(t *testing.T) {
	fn := NearWhiteToTransparent(DefaultWhiteThreshold)

	tests := []struct {
		name  string
		in    Pixel
		clear bool
	}{
		{"opaque white", Pixel{255, 255, 255, 255}, true},
		{"just above threshold", Pixel{241, 241, 241, 241}, true},
		{"red at threshold", Pixel{240, 255, 255, 255}, false},
		{"green at threshold", Pixel{255, 240, 255, 255}, false},
		{"blue at threshold", Pixel{255, 255, 240, 255}, false},
		{"alpha at threshold", Pixel{255, 255, 255, 240}, false},
		{"translucent white", Pixel{255, 255, 255, 100}, false},
		{"black", Pixel{0, 0, 0, 255}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fn(tt.in, 0, 0, 1, 1)
			want := tt.in
			if tt.clear {
				want = Transparent
			}
			if got != want {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestNearWhiteToTransparent_AllWhiteImage(t *testing.T) {
	src := createFilledImage(4, 4, Pixel{255, 255, 255, 255})
	out, changed := Apply(src, NearWhiteToTransparent(DefaultWhiteThreshold), nil)

	if changed != 16 {
		t.Errorf("changed: got %d, want 16", changed)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := pixelAt(out, x, y); got != Transparent {
				t.Errorf("pixel (%d,%d): got %v, want transparent", x, y, got)
			}
		}
	}
}

func TestRedToGray(t *testing.T) {
	fn := RedToGray(DefaultRedRule())

	tests := []struct {
		name    string
		in      Pixel
		replace bool
	}{
		{"pure red", Pixel{255, 0, 0, 255}, true},
		{"dark-ish red", Pixel{201, 149, 149, 255}, true},
		{"translucent red", Pixel{255, 0, 0, 10}, true},
		{"red at min", Pixel{200, 0, 0, 255}, false},
		{"green at max", Pixel{255, 150, 0, 255}, false},
		{"blue at max", Pixel{255, 0, 150, 255}, false},
		{"white", Pixel{255, 255, 255, 255}, false},
		{"black", Pixel{0, 0, 0, 255}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fn(tt.in, 0, 0, 1, 1)
			want := tt.in
			if tt.replace {
				want = LightGray
			}
			if got != want {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestRedToGray_SingleRedPixel(t *testing.T) {
	black := Pixel{0, 0, 0, 255}
	src := createFilledImage(5, 5, black)
	src.SetNRGBA(2, 2, color.NRGBA{255, 0, 0, 255})

	var visited []Pixel
	out, changed := Apply(src, RedToGray(DefaultRedRule()), func(x, y int, before, after Pixel) {
		if x != 2 || y != 2 {
			t.Errorf("unexpected change at (%d,%d)", x, y)
		}
		visited = append(visited, after)
	})

	if changed != 1 || len(visited) != 1 {
		t.Fatalf("changed: got %d (visited %d), want 1", changed, len(visited))
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := black
			if x == 2 && y == 2 {
				want = LightGray
			}
			if got := pixelAt(out, x, y); got != want {
				t.Errorf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBorderToTransparent(t *testing.T) {
	fn := BorderToTransparent(10)
	opaque := Pixel{10, 20, 30, 255}

	tests := []struct {
		name  string
		x, y  int
		clear bool
	}{
		{"origin", 0, 0, true},
		{"center", 50, 50, false},
		{"last left border column", 9, 50, true},
		{"first interior column", 10, 50, false},
		{"right edge at width-border", 90, 50, false},
		{"right edge past width-border", 91, 50, true},
		{"last column", 99, 50, true},
		{"last top border row", 50, 9, true},
		{"first interior row", 50, 10, false},
		{"bottom at height-border", 50, 90, false},
		{"bottom past height-border", 50, 91, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fn(opaque, tt.x, tt.y, 100, 100)
			want := opaque
			if tt.clear {
				want = Transparent
			}
			if got != want {
				t.Errorf("(%d,%d): got %v, want %v", tt.x, tt.y, got, want)
			}
		})
	}
}

func TestBorderToTransparent_OversizedBorder(t *testing.T) {
	src := createFilledImage(10, 6, Pixel{1, 2, 3, 255})
	out, changed := Apply(src, BorderToTransparent(5), nil)

	if changed != 60 {
		t.Errorf("changed: got %d, want 60", changed)
	}
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d] = %d, want 0", i, v)
		}
	}
}

func TestApply_PreservesDimensions(t *testing.T) {
	sizes := []struct{ w, h int }{{1, 1}, {3, 7}, {64, 32}, {0, 0}}
	for _, name := range Names() {
		fn, err := Lookup(name, DefaultParams())
		if err != nil {
			t.Fatalf("Lookup(%s): %v", name, err)
		}
		for _, sz := range sizes {
			src := createFilledImage(sz.w, sz.h, Pixel{250, 100, 100, 255})
			out, _ := Apply(src, fn, nil)
			if out.Bounds().Dx() != sz.w || out.Bounds().Dy() != sz.h {
				t.Errorf("%s: got %dx%d, want %dx%d", name, out.Bounds().Dx(), out.Bounds().Dy(), sz.w, sz.h)
			}
		}
	}
}

func TestApply_OffsetSource(t *testing.T) {
	full := createFilledImage(6, 6, Pixel{0, 0, 0, 255})
	full.SetNRGBA(3, 3, color.NRGBA{255, 0, 0, 255})
	sub := full.SubImage(image.Rect(2, 2, 5, 5)).(*image.NRGBA)

	out, changed := Apply(sub, RedToGray(DefaultRedRule()), nil)
	if changed != 1 {
		t.Fatalf("changed: got %d, want 1", changed)
	}
	if got := pixelAt(out, 1, 1); got != LightGray {
		t.Errorf("pixel (1,1): got %v, want %v", got, LightGray)
	}
	if got := pixelAt(full, 3, 3); got != (Pixel{255, 0, 0, 255}) {
		t.Errorf("source was modified: %v", got)
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, err := Lookup("sepia", DefaultParams()); err == nil {
		t.Error("Lookup should fail for unknown transform")
	}
}

func TestNames(t *testing.T) {
	want := []string{
		NameBorderToTransparent,
		NameNearWhiteToTransparent,
		NameNormalizeAlpha,
		NameRedToGray,
	}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names[%d]: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPixel_String(t *testing.T) {
	if got := LightGray.String(); got != "(211, 211, 211, 255)" {
		t.Errorf("String: got %s", got)
	}
}
