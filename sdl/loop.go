package sdl

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"uk.ac.bris.cs/golengine/gol"
	"uk.ac.bris.cs/golengine/util"
)

// view draws flipped cells into the window and logs everything else.
type view struct {
	*eventLogger
	w     *Window
	dirty bool
}

func (v *view) CellFlipped(e gol.CellFlipped) {
	v.w.FlipPixel(e.Cell.X, e.Cell.Y)
}

func (v *view) CellsFlipped(e gol.CellsFlipped) {
	for _, cell := range e.Cells {
		v.w.FlipPixel(cell.X, cell.Y)
	}
}

func (v *view) TurnComplete(gol.TurnComplete) {
	v.dirty = true
}

// Run shows the world in an SDL window until the run closes events. It must be called
// from the main goroutine with the OS thread locked.
func Run(p gol.Params, fps int, events <-chan gol.Event, keyPresses chan<- rune, log logrus.FieldLogger) error {
	w, err := NewWindow("GOL GUI", int32(p.ImageWidth), int32(p.ImageHeight))
	if err != nil {
		return err
	}
	defer w.Destroy()

	keyLog := util.Target(log, "SDL")
	v := &view{eventLogger: newEventLogger(log), w: w}
	refresh := time.NewTicker(time.Second / time.Duration(fps))
	defer refresh.Stop()

	for {
		select {
		case <-refresh.C:
			if key, ok := keyFor(w.PollEvent()); ok {
				select {
				case keyPresses <- key:
				default:
					keyLog.WithField("key", string(key)).Warn("Key press dropped")
				}
			}
			if v.dirty {
				if err := w.RenderFrame(); err != nil {
					return err
				}
				v.dirty = false
			}
		case event, ok := <-events:
			if !ok {
				return nil
			}
			event.Visit(v)
		}
	}
}

// keyFor maps a window event onto the key press the distributor understands.
func keyFor(event sdl.Event) (rune, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return 'q', true
	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return 0, false
		}
		switch e.Keysym.Sym {
		case sdl.K_p:
			return 'p', true
		case sdl.K_s:
			return 's', true
		case sdl.K_q, sdl.K_ESCAPE:
			return 'q', true
		case sdl.K_k:
			return 'k', true
		}
	}
	return 0, false
}
