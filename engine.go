package rowan

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// EditorFunc is called once per frame after the world update, for debug
// menus and in-game editors that mutate the scene tree.
type EditorFunc func(e *Engine, dt float32)

// Engine owns the world, the input registry, the camera and the log, and
// runs them in a fixed order each frame: scripted input, input dispatch,
// world update, camera, editor hook, then the dirty scene flush. Engine
// implements ebiten.Game.
type Engine struct {
	cfg    *Config
	log    *Log
	world  *World
	input  *Input
	camera *Camera
	runner *TestRunner
	editor EditorFunc

	fps   fpsCounter
	shots []string

	saveRequested bool
	quit          bool
	frame         uint64
}

// NewEngine builds an engine from cfg. deps supplies the filesystem, log and
// resource managers; its paths are taken from cfg.
func NewEngine(cfg *Config, deps WorldConfig) *Engine {
	if cfg == nil {
		panic("rowan: NewEngine requires a config")
	}
	if deps.Log == nil {
		deps.Log = NewNopLog()
	}
	deps.TemplatePath = cfg.TemplatePath
	deps.ScenePath = cfg.ScenePath
	return &Engine{
		cfg:    cfg,
		log:    deps.Log,
		world:  NewWorld(deps),
		input:  NewInput(deps.Log),
		camera: NewCamera(cfg.Width, cfg.Height),
	}
}

// Config returns the engine settings.
func (e *Engine) Config() *Config { return e.cfg }

// Log returns the engine log.
func (e *Engine) Log() *Log { return e.log }

// World returns the object world.
func (e *Engine) World() *World { return e.world }

// Input returns the input registry.
func (e *Engine) Input() *Input { return e.input }

// Camera returns the pick camera.
func (e *Engine) Camera() *Camera { return e.camera }

// Frame returns the number of frames stepped so far.
func (e *Engine) Frame() uint64 { return e.frame }

// SetTestRunner attaches a scripted input runner, or detaches it with nil.
func (e *Engine) SetTestRunner(r *TestRunner) {
	if r != nil {
		r.screenshot = e.Screenshot
	}
	e.runner = r
}

// SetEditor installs the per-frame editor hook.
func (e *Engine) SetEditor(fn EditorFunc) { e.editor = fn }

// RequestSave asks for every dirty scene to be written at the end of the
// current frame.
func (e *Engine) RequestSave() { e.saveRequested = true }

// Quit ends the ebiten loop after the current frame.
func (e *Engine) Quit() { e.quit = true }

// Startup applies the settings and loads the scenes.
func (e *Engine) Startup() error {
	e.log.SetRenderToScreen(e.cfg.LogToScreen)
	e.world.SetDebugMode(e.cfg.DebugMode)
	e.input.Startup(e.cfg.Fullscreen)
	e.input.SetScreenSize(e.cfg.Width, e.cfg.Height)
	if err := e.world.Startup(e.cfg.TemplatePath, e.cfg.ScenePath); err != nil {
		e.log.Write(LogWarning, LogEngine, "Startup finished with errors: %v", err)
		return err
	}
	return nil
}

// Shutdown saves dirty scenes when auto save is on, then releases the world
// and the input registry.
func (e *Engine) Shutdown() error {
	var err error
	if e.cfg.AutoSave {
		err = e.world.Flush()
	}
	e.world.Shutdown()
	e.input.Shutdown()
	_ = e.log.Sync()
	return err
}

// Step runs one frame of dt seconds without touching platform input.
func (e *Engine) Step(dt float32) {
	if e.runner != nil {
		e.runner.step(e.input, e.world)
	}
	e.input.Update()
	e.world.Update(dt)
	e.camera.update(dt, e.world)
	if e.editor != nil {
		e.editor(e, dt)
	}
	if e.saveRequested || e.cfg.AutoSave {
		e.saveRequested = false
		if err := e.world.Flush(); err != nil {
			e.log.Write(LogError, LogEngine, "Unable to save scenes: %v", err)
		}
	}
	e.log.Update(dt)
	e.fps.update(dt, ebiten.ActualFPS(), ebiten.ActualTPS())
	e.frame++
}

// PickScreen returns the first object of the current scene under the window
// position (x, y), or nil.
func (e *Engine) PickScreen(x, y float32) *GameObject {
	s := e.world.CurrentScene()
	if s == nil {
		return nil
	}
	from, to, err := e.camera.ScreenRay(x, y)
	if err != nil {
		return nil
	}
	return s.PickLine(from, to)
}

// Update implements ebiten.Game. Platform input is polled before the frame
// runs.
func (e *Engine) Update() error {
	if e.quit {
		return ebiten.Termination
	}
	e.input.PollEbiten()
	e.Step(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

// Draw implements ebiten.Game. It prints the debug overlay and the on-screen
// log, then captures queued screenshots. Model rendering belongs to the game.
func (e *Engine) Draw(screen *ebiten.Image) {
	y := 0
	if e.cfg.DebugMode {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s | %s", &e.fps, e.world.debugStats()), 0, y)
		y += 16
	}
	for _, entry := range e.log.Entries() {
		if entry.Alpha <= 0 {
			continue
		}
		ebitenutil.DebugPrintAt(screen, entry.Message, 0, y)
		y += 16
	}
	e.flushScreenshots(screen)
}

// Layout implements ebiten.Game.
func (e *Engine) Layout(_, _ int) (int, int) {
	e.camera.Width, e.camera.Height = e.cfg.Width, e.cfg.Height
	return e.cfg.Width, e.cfg.Height
}

// Run opens the window, starts the engine and blocks until the game quits.
func Run(e *Engine) error {
	ebiten.SetWindowTitle(e.cfg.Title)
	ebiten.SetWindowSize(e.cfg.Width, e.cfg.Height)
	ebiten.SetFullscreen(e.cfg.Fullscreen)
	ebiten.SetTPS(e.cfg.TPS)

	if err := e.Startup(); err != nil {
		e.log.Write(LogWarning, LogEngine, "Continuing with partially loaded world")
	}
	runErr := ebiten.RunGame(e)
	if err := e.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
