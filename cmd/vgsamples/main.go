// Command vgsamples renders the numbered test pictures with the backend
// selected by build tags.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/vg/device"
	"github.com/gogpu/vg/samples"
)

func main() {
	var (
		out      = flag.String("out", "vgsamples", "output directory")
		scale    = flag.Float64("scale", 1, "pixels per user unit")
		picture  = flag.Int("picture", -1, "render only this picture number")
		parallel = flag.Int("parallel", runtime.GOMAXPROCS(0), "pictures rendered at once")
	)
	flag.Parse()

	pics := samples.Pictures()
	if *picture >= 0 {
		p, ok := samples.Lookup(*picture)
		if !ok {
			log.Fatalf("No picture %d (have 0-%d)", *picture, len(pics)-1)
		}
		pics = []samples.Picture{p}
	}
	if err := os.MkdirAll(*out, 0o750); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	var g errgroup.Group
	g.SetLimit(max(*parallel, 1))
	for _, p := range pics {
		g.Go(func() error {
			path, err := render(p, *out, *scale)
			if err != nil {
				return fmt.Errorf("picture %d (%s): %w", p.Number, p.Name, err)
			}
			log.Printf("Saved %s\n", path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	log.Printf("%d pictures rendered with %s backend\n", len(pics), device.Backend)
}

// render draws p on its own device and saves it under dir.
func render(p samples.Picture, dir string, scale float64) (string, error) {
	dev, err := device.New()
	if err != nil {
		return "", err
	}
	if c, ok := any(dev).(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	w := int(p.Size.Width*scale + 0.5)
	h := int(p.Size.Height*scale + 0.5)
	bm, err := dev.BitmapTarget(w, h, scale)
	if err != nil {
		return "", err
	}
	rc := bm.RenderContext()
	if err := samples.Draw[device.Brush, *device.Image, *device.Text, *device.TextLayout](rc, p.Number); err != nil {
		_ = rc.Finish()
		return "", err
	}
	if err := rc.Finish(); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%02d-%s.%s", device.Backend, p.Number, p.Name, device.FileExt))
	return path, bm.SaveFile(path)
}
