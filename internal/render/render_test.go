package render

import (
	"image"
	"testing"

	"github.com/example/pixelpad/internal/bitmap"
	"github.com/example/pixelpad/internal/pixel"
)

func TestCompositeSingleLayerExact(t *testing.T) {
	bm := bitmap.NRGBA.New(pixel.Sz(3, 3), pixel.Transparent)
	want := pixel.RGBA(12, 34, 56, 200)
	bm.SetPixel(image.Pt(1, 1), want)

	out := Composite(bm.Size(), []Layer{{Bitmap: bm, Visible: true, Alpha: 255}})
	if got := pixel.FromColor(out.At(1, 1)); got != want {
		t.Fatalf("pixel = %v, want %v", got, want)
	}
	if got := pixel.FromColor(out.At(0, 0)); got != pixel.Transparent {
		t.Fatalf("background = %v, want transparent", got)
	}
}

func TestCompositeSkipsHiddenAndStacks(t *testing.T) {
	size := pixel.Sz(2, 1)
	bottom := bitmap.Buffer.New(size, pixel.RGBA(255, 0, 0, 255))
	top := bitmap.Buffer.New(size, pixel.Transparent)
	top.SetPixel(image.Pt(1, 0), pixel.RGBA(0, 0, 255, 255))
	hidden := bitmap.Buffer.New(size, pixel.White)

	out := Composite(size, []Layer{
		{Bitmap: bottom, Visible: true, Alpha: 255},
		{Bitmap: top, Visible: true, Alpha: 255},
		{Bitmap: hidden, Visible: false, Alpha: 255},
	})
	if got := pixel.FromColor(out.At(0, 0)); got != pixel.RGBA(255, 0, 0, 255) {
		t.Fatalf("left = %v, want red", got)
	}
	if got := pixel.FromColor(out.At(1, 0)); got != pixel.RGBA(0, 0, 255, 255) {
		t.Fatalf("right = %v, want blue", got)
	}
}

func TestCompositeLayerAlpha(t *testing.T) {
	size := pixel.Sz(1, 1)
	bottom := bitmap.NRGBA.New(size, pixel.White)
	top := bitmap.NRGBA.New(size, pixel.Black)
	out := Composite(size, []Layer{
		{Bitmap: bottom, Visible: true, Alpha: 255},
		{Bitmap: top, Visible: true, Alpha: 128},
	})
	got := pixel.FromColor(out.At(0, 0))
	if got.A != 255 || got.R < 120 || got.R > 135 {
		t.Fatalf("half black over white = %v", got)
	}
}

func TestSilhouetteKeepsAlpha(t *testing.T) {
	bm := bitmap.Buffer.New(pixel.Sz(2, 1), pixel.Transparent)
	bm.SetPixel(image.Pt(0, 0), pixel.RGBA(10, 200, 30, 90))
	if !Silhouette(bm, pixel.Black) {
		t.Fatal("expected a change")
	}
	if got := bm.Pixel(image.Pt(0, 0)); got != pixel.RGBA(0, 0, 0, 90) {
		t.Fatalf("pixel = %v", got)
	}
	if got := bm.Pixel(image.Pt(1, 0)); got != pixel.Transparent {
		t.Fatalf("transparent pixel changed to %v", got)
	}
}

func TestApplyPaletteNearest(t *testing.T) {
	bm := bitmap.NRGBA.New(pixel.Sz(3, 1), pixel.Transparent)
	bm.SetPixel(image.Pt(0, 0), pixel.RGBA(250, 10, 10, 255))
	bm.SetPixel(image.Pt(1, 0), pixel.RGBA(10, 10, 240, 100))
	colors := []pixel.Color{pixel.RGBA(255, 0, 0, 255), pixel.RGBA(0, 0, 255, 255)}

	if !ApplyPalette(bm, colors) {
		t.Fatal("expected a change")
	}
	if got := bm.Pixel(image.Pt(0, 0)); got != pixel.RGBA(255, 0, 0, 255) {
		t.Fatalf("first = %v", got)
	}
	if got := bm.Pixel(image.Pt(1, 0)); got != pixel.RGBA(0, 0, 255, 100) {
		t.Fatalf("second = %v", got)
	}
	if got := bm.Pixel(image.Pt(2, 0)); got != pixel.Transparent {
		t.Fatalf("third = %v", got)
	}
	if ApplyPalette(bm, nil) {
		t.Fatal("empty palette should not change anything")
	}
}

func TestFlips(t *testing.T) {
	bm := bitmap.Buffer.New(pixel.Sz(3, 2), pixel.Transparent)
	bm.SetPixel(image.Pt(0, 0), pixel.White)
	FlipHorizontal(bm)
	if bm.Pixel(image.Pt(2, 0)) != pixel.White || bm.Pixel(image.Pt(0, 0)) != pixel.Transparent {
		t.Fatal("horizontal flip did not mirror")
	}
	FlipVertical(bm)
	if bm.Pixel(image.Pt(2, 1)) != pixel.White || bm.Pixel(image.Pt(2, 0)) != pixel.Transparent {
		t.Fatal("vertical flip did not mirror")
	}
}

func TestScale(t *testing.T) {
	bm := bitmap.NRGBA.New(pixel.Sz(2, 1), pixel.Transparent)
	bm.SetPixel(image.Pt(1, 0), pixel.White)
	out := Scale(pixel.Image(bm), 3)
	if out.Bounds() != image.Rect(0, 0, 6, 3) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if got := pixel.FromColor(out.At(5, 2)); got != pixel.White {
		t.Fatalf("scaled pixel = %v", got)
	}
	if got := pixel.FromColor(out.At(2, 2)); got != pixel.Transparent {
		t.Fatalf("scaled pixel = %v", got)
	}
}

func TestFlatten(t *testing.T) {
	bm := bitmap.NRGBA.New(pixel.Sz(1, 1), pixel.Transparent)
	out := Flatten(pixel.Image(bm), pixel.White)
	if got := pixel.FromColor(out.At(0, 0)); got != pixel.White {
		t.Fatalf("flattened = %v", got)
	}
}

func TestScaleKeepsStraightAlpha(t *testing.T) {
	bm := bitmap.Buffer.New(pixel.Sz(1, 2), pixel.Transparent)
	soft := pixel.RGBA(200, 100, 7, 3)
	bm.SetPixel(image.Pt(0, 1), soft)
	for _, factor := range []int{1, 2} {
		out := Scale(pixel.Image(bm), factor)
		if got := pixel.FromColor(out.At(factor-1, 2*factor-1)); got != soft {
			t.Fatalf("factor %d: pixel = %v, want %v", factor, got, soft)
		}
	}
}

func TestScaleSubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(2, 3, pixel.White.NRGBA())
	out := Scale(img.SubImage(image.Rect(2, 2, 4, 4)), 2)
	if out.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if got := pixel.FromColor(out.At(1, 3)); got != pixel.White {
		t.Fatalf("pixel = %v", got)
	}
	if got := pixel.FromColor(out.At(2, 3)); got != pixel.Transparent {
		t.Fatalf("pixel = %v", got)
	}
}

func TestThumbnail(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	for i := 0; i < len(img.Pix); i++ {
		img.Pix[i] = 0xff
	}
	out := Thumbnail(img, 64)
	if out.Bounds() != image.Rect(0, 0, 64, 32) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if got := pixel.FromColor(out.At(32, 16)); got != pixel.White {
		t.Fatalf("pixel = %v", got)
	}
	if small := Thumbnail(image.NewNRGBA(image.Rect(0, 0, 8, 4)), 64); small.Bounds() != image.Rect(0, 0, 8, 4) {
		t.Fatalf("small bounds = %v", small.Bounds())
	}
}
