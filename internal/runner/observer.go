package runner

import (
	"log"

	"github.com/ironsheep/cardprep/internal/imaging"
	"github.com/ironsheep/cardprep/internal/transform"
)

// Observer receives progress events from a Runner. Implementations must not
// modify the pixels they are shown.
type Observer interface {
	Opening(path string)
	PixelChanged(path string, x, y int, before, after transform.Pixel)
	Saving(path string)
	Failed(path string, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) Opening(string) {}
func (NopObserver) PixelChanged(string, int, int, transform.Pixel, transform.Pixel) {}
func (NopObserver) Saving(string) {}
func (NopObserver) Failed(string, error) {}

// LogObserver prints progress lines through a standard logger.
type LogObserver struct {
	// Logger receives the lines. Nil means the standard logger.
	Logger *log.Logger

	// Pixels enables one line per changed pixel.
	Pixels bool
}

func (o LogObserver) printf(format string, args ...interface{}) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func (o LogObserver) Opening(path string) {
	o.printf("Opening %s", path)
}

func (o LogObserver) PixelChanged(path string, x, y int, before, after transform.Pixel) {
	if !o.Pixels {
		return
	}
	o.printf("\tFor pixel (%d, %d), putting %s alpha %d (was %s alpha %d)",
		x, y,
		imaging.HexColor(after.R, after.G, after.B), after.A,
		imaging.HexColor(before.R, before.G, before.B), before.A)
}

func (o LogObserver) Saving(path string) {
	o.printf("Saving image to %s", path)
}

func (o LogObserver) Failed(path string, err error) {
	o.printf("Failed %s: %v", path, err)
}
