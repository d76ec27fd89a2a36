// Package app wires the document, session, layout, viewport, and
// renderer into a terminal application with one event loop.
package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/dshills/folio/internal/annotate"
	"github.com/dshills/folio/internal/config"
	"github.com/dshills/folio/internal/document"
	"github.com/dshills/folio/internal/editor"
	"github.com/dshills/folio/internal/history"
	"github.com/dshills/folio/internal/kml"
	"github.com/dshills/folio/internal/layout"
	"github.com/dshills/folio/internal/render"
	"github.com/dshills/folio/internal/viewport"
)

// ErrQuit signals a clean user-initiated exit.
var ErrQuit = errors.New("quit")

// animationInterval paces scroll animation frames.
const animationInterval = 16 * time.Millisecond

// Options configures application startup.
type Options struct {
	ConfigPath string
	File       string
	LogLevel   string
	Debug      bool
}

// App owns every component and the event loop.
type App struct {
	opts    Options
	cfg     *config.Config
	screen  tcell.Screen
	surface render.Surface

	doc      *document.Document
	session  *editor.Session
	lm       *layout.Manager
	view     *viewport.Manager
	renderer *render.Renderer
	ann      *annotate.Manager

	watcher *config.Watcher
	cfgCh   chan *config.Config

	blinkVisible bool
	modified     bool
	quitting     bool

	dragging   bool
	dragAnchor document.Position
}

// New loads the config and document and builds the component graph.
// The screen is attached separately so tests can use a simulation
// screen.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	doc := document.New()
	if opts.File != "" {
		f, err := os.Open(opts.File)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open document: %w", err)
		}
		if err == nil {
			loaded, perr := kml.Parse(f)
			f.Close()
			if perr != nil {
				return nil, fmt.Errorf("load document: %w", perr)
			}
			doc = loaded
		}
	}

	a := &App{
		opts:         opts,
		cfg:          cfg,
		doc:          doc,
		cfgCh:        make(chan *config.Config, 1),
		blinkVisible: true,
	}
	a.session = editor.NewSession(doc, undoOptions(cfg))

	metrics := layout.CellMetrics{Spacing: float64(cfg.Layout.ParagraphSpacing)}
	a.lm = layout.NewManager(doc, metrics, 80)
	a.lm.SetMaxCached(cfg.Layout.MaxCachedParagraphs)
	doc.AddObserver(a.lm)

	a.ann = annotate.NewManager()
	doc.AddObserver(a.ann)

	a.view = viewport.NewManager(80, 24)
	a.renderer = render.NewRenderer(doc, a.lm, a.view, render.DefaultTheme())
	a.renderer.SetShowScrollbar(cfg.Appearance.ShowScrollbar)

	if opts.ConfigPath != "" {
		w, werr := config.Watch(opts.ConfigPath, func(c *config.Config) {
			select {
			case a.cfgCh <- c:
			default:
			}
		})
		if werr != nil {
			log.Warn().Err(werr).Msg("config watch unavailable")
		} else {
			a.watcher = w
		}
	}
	return a, nil
}

func undoOptions(cfg *config.Config) history.Options {
	return history.Options{
		MaxEntries:     cfg.Undo.MaxEntries,
		MergeWindow:    time.Duration(cfg.Undo.MergeWindowMS) * time.Millisecond,
		MaxMergeLength: cfg.Undo.MaxMergeLength,
	}
}

// Session exposes the editing session, for tests.
func (a *App) Session() *editor.Session { return a.session }

// Annotations exposes the annotation manager so checkers can report.
func (a *App) Annotations() *annotate.Manager { return a.ann }

// AttachScreen adopts an initialized tcell screen.
func (a *App) AttachScreen(screen tcell.Screen) {
	a.screen = screen
	a.surface = render.NewTerminalSurface(screen)
	screen.EnableMouse()
	w, h := screen.Size()
	a.resize(w, h)
}

func (a *App) resize(w, h int) {
	a.view.Resize(float64(w), float64(h))
	wrap := float64(w - 1) // reserve the scrollbar column
	if a.cfg.Layout.WrapWidth > 0 && float64(a.cfg.Layout.WrapWidth) < wrap {
		wrap = float64(a.cfg.Layout.WrapWidth)
	}
	a.lm.SetWidth(wrap)
	a.renderer.Dirty().MarkAll()
}

// Run drives the event loop until quit. Returns ErrQuit on a clean
// exit.
func (a *App) Run() error {
	if a.screen == nil {
		return errors.New("no screen attached")
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	var blinkC <-chan time.Time
	if a.cfg.Appearance.CursorBlinkMS > 0 {
		blink := time.NewTicker(time.Duration(a.cfg.Appearance.CursorBlinkMS) * time.Millisecond)
		defer blink.Stop()
		blinkC = blink.C
	}
	anim := time.NewTicker(animationInterval)
	defer anim.Stop()

	a.renderer.Dirty().MarkAll()
	for {
		if a.renderer.Dirty().IsDirty() {
			a.draw()
		}
		select {
		case ev, ok := <-events:
			if !ok {
				return ErrQuit
			}
			if err := a.handleEvent(ev); err != nil {
				return err
			}
		case <-blinkC:
			a.blinkVisible = !a.blinkVisible
			a.renderer.InvalidateCursor(a.session.Cursor())
		case <-anim.C:
			if a.view.Update(float64(animationInterval) / float64(time.Second)) {
				a.renderer.Dirty().MarkAll()
			}
		case cfg := <-a.cfgCh:
			a.applyConfig(cfg)
		}
	}
}

func (a *App) applyConfig(cfg *config.Config) {
	a.cfg = cfg
	a.lm.SetMetrics(layout.CellMetrics{Spacing: float64(cfg.Layout.ParagraphSpacing)})
	a.lm.SetMaxCached(cfg.Layout.MaxCachedParagraphs)
	a.renderer.SetShowScrollbar(cfg.Appearance.ShowScrollbar)
	w, h := a.screen.Size()
	a.resize(w, h)
	log.Info().Msg("settings applied")
}

func (a *App) handleEvent(ev tcell.Event) error {
	switch e := ev.(type) {
	case *tcell.EventResize:
		w, h := e.Size()
		a.resize(w, h)
	case *tcell.EventKey:
		return a.handleKey(e)
	case *tcell.EventMouse:
		a.handleMouse(e)
	}
	return nil
}

func (a *App) draw() {
	a.view.SetContentHeight(a.lm.TotalHeight())
	cursorRect := a.lm.CursorDocumentRect(a.session.Cursor())
	a.view.EnsureVisible(cursorRect, 1)

	f := render.Frame{
		Cursor:        a.session.Cursor(),
		CursorVisible: a.blinkVisible,
		Overlays:      a.overlays(),
	}
	if a.session.HasSelection() {
		sel := a.session.Selection()
		f.Selection = &sel
	}
	if a.session.IsComposing() {
		comp := a.session.CompositionRange()
		f.Composition = &comp
	}
	a.renderer.Draw(a.surface, f)
}

// Save writes the document back to its file.
func (a *App) Save() error {
	if a.opts.File == "" {
		return errors.New("no file to save to")
	}
	f, err := os.Create(a.opts.File)
	if err != nil {
		return err
	}
	if err := kml.Serialize(f, a.doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.modified = false
	log.Info().Str("path", a.opts.File).Msg("document saved")
	return nil
}

// Shutdown releases the terminal and the config watcher.
func (a *App) Shutdown() {
	if a.quitting {
		return
	}
	a.quitting = true
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.screen != nil {
		a.screen.Fini()
	}
}
