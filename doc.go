// Package rowan is the core of a small 3D game engine built on [Ebitengine].
//
// Rowan provides the GameFile text format used for templates and scene
// files, a world of scenes holding trees of game objects, ray and point
// picking against simple clip volumes, and an input callback registry fed by
// ebiten.
//
// # Quick start
//
// [Run] opens a window and drives an [Engine] until the game quits:
//
//	cfg, _ := rowan.DefaultConfig()
//	eng := rowan.NewEngine(cfg, rowan.WorldConfig{Models: myModels})
//	eng.Input().RegisterKeyCallback(func(bool) bool {
//		eng.Quit()
//		return true
//	}, ebiten.KeyEscape, rowan.InputKeyDown, true)
//	rowan.Run(eng)
//
// Tests and tools that need no window call [Engine.Startup] and then
// [Engine.Step] once per frame.
//
// # GameFile
//
// A GameFile is a tree of named objects with string properties:
//
//	gameObject
//	{
//		name : ship
//		model : ship.mdl
//		clipType : sphere
//		clipSize : 2, 2, 2
//	}
//
// A line holding "//" before any colon is a comment. Objects close
// with '}' or, for compatibility with hand-edited files, a blank line.
// Grammar problems are logged and skipped; [GameFile.Load] only fails when
// the file cannot be opened.
//
// # World and scenes
//
// A [World] owns every [GameObject] and addresses them by [ObjectID]. Objects
// are created from templates with [World.CreateObject], linked with
// [World.AttachChild] and destroyed with [World.DestroyObject]. Destroyed
// objects leave the tree at once and are released at the end of
// [World.Update], so IDs held by callbacks stay safe for the rest of the
// frame. Scenes load from and save to .scn files through the same GameFile
// format.
//
// # Input
//
// Callbacks are registered per key or mouse button and event type and run
// newest first. One alphanumeric slot catches every letter and digit. Input
// can be scripted with [Input.Inject] or a JSON [TestRunner].
//
// # Configuration and logging
//
// [LoadConfig] reads settings through viper, with ROWAN_* environment
// overrides. [Log] wraps a zap logger with per-subsystem names and an
// optional on-screen history.
//
// [Ebitengine]: https://ebitengine.org
package rowan
