package document

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{uint8(x), uint8(y), 120, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func sampleResume() *Resume {
	return &Resume{
		Name:    "María José Andrade Cedeño",
		Summary: "Ingeniera de software con experiencia en servicios de pagos.",
		Details: []Field{
			{Label: "Cédula", Value: "1312345678"},
			{Label: "Teléfono", Value: "+593 99 123 4567"},
			{Label: "Sitio web", Value: ""},
		},
		Sections: []Section{
			{Title: "Experiencia laboral", Items: manyItems(3)},
			{Title: "Cursos y capacitaciones", Items: manyItems(2)},
		},
	}
}

func TestCanvasRendersPDF(t *testing.T) {
	res := sampleResume()
	res.Photo = testPNG(t, 80, 60)

	out, err := NewCanvasRenderer("", nil).Render(context.Background(), res)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	n, err := NewMerger().PageCount(out)
	if err != nil || n != 1 {
		t.Fatalf("page count %d, err %v", n, err)
	}
}

func TestCanvasBadPhotoIsOmitted(t *testing.T) {
	res := sampleResume()
	res.Photo = []byte("not an image")
	if _, err := NewCanvasRenderer("", nil).Render(context.Background(), res); err != nil {
		t.Fatalf("bad photo should not fail the render: %v", err)
	}
}

func TestCanvasPaginates(t *testing.T) {
	res := sampleResume()
	res.Sections = []Section{{Title: "Cursos y capacitaciones", Items: manyItems(40)}}
	out, err := NewCanvasRenderer("", nil).Render(context.Background(), res)
	if err != nil {
		t.Fatal(err)
	}
	n, err := NewMerger().PageCount(out)
	if err != nil {
		t.Fatal(err)
	}
	if n < 2 {
		t.Fatalf("expected overflow onto more pages, got %d", n)
	}
}

func TestPreparePhotoSquare(t *testing.T) {
	out, err := PreparePhoto(testPNG(t, 90, 40), 64)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("got %v", b)
	}
}

func TestResolveFontSkipsUnusableFiles(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"Broken.ttf": "not a font",
		"Empty.ttf":  "",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if f := ResolveFont(dir, []string{"Broken", "Empty", "Missing"}); f != nil {
		t.Fatalf("expected fallback, got %q", f.Family)
	}
	if ResolveFont("", []string{"Broken"}) != nil {
		t.Fatal("no font dir should fall back")
	}
}

func TestResolveFontUsesSystemTTF(t *testing.T) {
	const sys = "/usr/share/fonts/truetype/dejavu"
	if _, err := os.Stat(filepath.Join(sys, "DejaVuSans.ttf")); err != nil {
		t.Skip("DejaVuSans.ttf not installed")
	}
	f := ResolveFont(sys, []string{"Missing", "DejaVuSans"})
	if f == nil || f.Family != "DejaVuSans" {
		t.Fatalf("got %+v", f)
	}
}

func TestCanvasBrokenFontFallsBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Broken.ttf"), []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := NewCanvasRenderer(dir, []string{"Broken", "Missing"}).Render(context.Background(), sampleResume())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}
