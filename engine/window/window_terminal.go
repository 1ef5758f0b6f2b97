package window

import (
	"sync"
	"time"
	"unicode"

	"github.com/Carmen-Shannon/polydrift/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gdamore/tcell/v2"
)

// terminalPollInterval bounds how long one message loop iteration waits for input.
const terminalPollInterval = 8 * time.Millisecond

// terminalWindow holds the tcell-specific window state.
type terminalWindow struct {
	parent *engineWindow
	scr    tcell.Screen

	events chan tcell.Event
	quit   chan struct{}

	mu        *sync.Mutex
	running   bool
	closeOnce *sync.Once
}

var _ platformWindow = &terminalWindow{}

// newTerminalWindow initializes the screen, enables mouse reporting for wheel events and
// starts the goroutine that forwards tcell events to the message loop.
func newTerminalWindow(w *engineWindow) (*terminalWindow, error) {
	scr := w.screen
	if scr == nil {
		var err error
		if scr, err = tcell.NewScreen(); err != nil {
			return nil, err
		}
	}
	if err := scr.Init(); err != nil {
		return nil, err
	}
	scr.EnableMouse()
	scr.HideCursor()

	cols, rows := scr.Size()
	w.width, w.height = cols, rows*2

	tw := &terminalWindow{
		parent:    w,
		scr:       scr,
		events:    make(chan tcell.Event, 64),
		quit:      make(chan struct{}),
		mu:        &sync.Mutex{},
		running:   true,
		closeOnce: &sync.Once{},
	}
	go tw.pump()
	return tw, nil
}

// pump forwards events until the screen is finalized, at which point PollEvent returns nil.
func (tw *terminalWindow) pump() {
	for {
		ev := tw.scr.PollEvent()
		if ev == nil {
			return
		}
		select {
		case tw.events <- ev:
		case <-tw.quit:
			return
		}
	}
}

func (tw *terminalWindow) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	return nil
}

func (tw *terminalWindow) screen() tcell.Screen {
	return tw.scr
}

func (tw *terminalWindow) isRunning() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.running
}

func (tw *terminalWindow) stop() {
	tw.mu.Lock()
	tw.running = false
	tw.mu.Unlock()
}

func (tw *terminalWindow) close() error {
	tw.stop()
	tw.closeOnce.Do(func() {
		close(tw.quit)
		tw.scr.Fini()
	})
	return nil
}

// processMessages handles every queued event, waiting up to terminalPollInterval for the first.
func (tw *terminalWindow) processMessages() bool {
	timer := time.NewTimer(terminalPollInterval)
	defer timer.Stop()

	select {
	case ev := <-tw.events:
		tw.handle(ev)
	case <-timer.C:
		return tw.isRunning()
	}
	for {
		select {
		case ev := <-tw.events:
			tw.handle(ev)
		default:
			return tw.isRunning()
		}
	}
}

func (tw *terminalWindow) handle(ev tcell.Event) {
	w := tw.parent
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		tw.scr.Sync()
		w.resized(cols, rows*2)
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		if buttons&tcell.WheelUp != 0 {
			w.scrolled(1)
		}
		if buttons&tcell.WheelDown != 0 {
			w.scrolled(-1)
		}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			tw.stop()
		case tcell.KeyUp:
			w.scrolled(1)
		case tcell.KeyDown:
			w.scrolled(-1)
		case tcell.KeyPgUp:
			w.scrolled(w.pageNotches)
		case tcell.KeyPgDn:
			w.scrolled(-w.pageNotches)
		case tcell.KeyRune:
			r := ev.Rune()
			if r == 'q' || r == 'Q' {
				tw.stop()
				return
			}
			w.keyDown(runeKeyCode(r))
		}
	}
}

// runeKeyCode maps a typed rune onto the GLFW-style codes in common, which use the
// uppercase ASCII value for letters and the ASCII value for digits and space.
func runeKeyCode(r rune) uint32 {
	if r == ' ' {
		return common.KeySpace
	}
	return uint32(unicode.ToUpper(r))
}
