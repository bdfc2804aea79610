package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakevo/camera"
	"github.com/pthm-cable/snakevo/config"
	"github.com/pthm-cable/snakevo/game"
	"github.com/pthm-cable/snakevo/systems"
	"github.com/pthm-cable/snakevo/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	manual := flag.Bool("manual", false, "Play a single snake with the arrow keys")
	logStats := flag.Bool("log-stats", false, "Output generation stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxGenerations := flag.Int("max-generations", 0, "Stop after N generations (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats || *headless,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		Manual:         *manual,
		MaxGenerations: *maxGenerations,
	}

	if *headless {
		if *manual {
			slog.Error("manual mode needs a window")
			os.Exit(1)
		}
		if err := runHeadless(cfg, opts); err != nil {
			slog.Error("simulation failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runWindow(cfg, opts); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless is pure CPU simulation, no raylib needed.
func runHeadless(cfg *config.Config, opts game.Options) error {
	g, err := game.NewGame(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	slog.Info("starting headless simulation",
		"run_id", g.RunID(),
		"seed", opts.Seed,
		"max_generations", opts.MaxGenerations,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for !g.Done() {
		if err := g.Update(); err != nil {
			return err
		}
	}
	return nil
}

func runWindow(cfg *config.Config, opts game.Options) error {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Snake Evolution")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	theme := ui.DefaultTheme()
	panelWidth := int32(cfg.Screen.PanelWidth)
	hud := ui.NewHUD()
	grids := ui.NewGridRenderer()
	controls := ui.NewControlsPanel(0, 0, panelWidth-20)
	statsPanel := ui.NewStatsPanel(0, 0, panelWidth-20)

	// Visualized runs advance at ticks_per_second; the tick budget accumulates
	// across frames so slow tick rates still progress at high frame rates.
	tickInterval := float32(1)
	if cfg.Screen.TicksPerSecond > 0 {
		tickInterval = 1 / float32(cfg.Screen.TicksPerSecond)
	}
	var tickAccum float32

	// Grid area camera; world and viewport match at zoom 1.
	areaW := float32(cfg.Screen.Width) - float32(panelWidth) - 20
	areaH := float32(cfg.Screen.Height) - 20
	cam := camera.New(areaW, areaH, areaW, areaH)
	selected := -1

	for !rl.WindowShouldClose() && !g.Done() {
		if g.Manual() {
			if dir := ui.PressedDirection(); dir != systems.Undecided {
				g.Steer(dir)
			}
			if rl.IsKeyPressed(rl.KeyR) {
				g.Restart()
			}
		}
		if rl.IsKeyPressed(rl.KeySpace) {
			g.TogglePause()
		}
		if rl.IsKeyPressed(rl.KeyV) {
			g.SetVisualize(!g.Visualize())
		}

		// Unvisualized runs go as fast as the speed setting allows.
		if !g.Visualize() {
			if err := g.Update(); err != nil {
				return err
			}
		} else {
			tickAccum += rl.GetFrameTime()
			for tickAccum >= tickInterval {
				tickAccum -= tickInterval
				if err := g.Update(); err != nil {
					return err
				}
			}
		}

		screenW := int32(rl.GetScreenWidth())
		screenH := int32(rl.GetScreenHeight())
		gridW := screenW - panelWidth
		areaW, areaH = float32(gridW-20), float32(screenH-20)
		cam.Resize(areaW, areaH, areaW, areaH)
		handleCameraInput(cam, areaW, areaH)

		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			mouse := rl.GetMousePosition()
			if mouse.X >= 10 && mouse.X < 10+areaW && mouse.Y >= 10 && mouse.Y < 10+areaH {
				wx, wy := cam.ScreenToWorld(mouse.X-10, mouse.Y-10)
				selected = ui.TileAt(g.Size(), int32(areaW), int32(areaH), wx, wy)
			}
		}
		highlight := selected
		if highlight < 0 {
			highlight = g.Best()
		}

		rl.BeginDrawing()
		rl.ClearBackground(theme.Background)

		var views []game.View
		if g.Visualize() || g.Manual() {
			views = g.Views()
		}
		if g.Visualize() {
			rl.BeginScissorMode(10, 10, int32(areaW), int32(areaH))
			grids.Draw(views, highlight, 10, 10, cam)
			rl.EndScissorMode()
		}

		px := gridW + 10
		score := 0
		if g.Manual() {
			score = views[0].Score
		}
		y := hud.Draw(px, 10, ui.HUDData{
			Title:      "Snake Evolution",
			Generation: g.Generation(),
			Alive:      g.Alive(),
			Size:       g.Size(),
			Tick:       g.Tick(),
			Speed:      g.StepsPerUpdate(),
			FPS:        rl.GetFPS(),
			Paused:     g.Paused(),
			Manual:     g.Manual(),
			Score:      score,
		})

		if !g.Manual() {
			controls.SetPosition(px, y+6)
			state, bottom := controls.Draw(ui.ControlsState{
				Visualize: g.Visualize(),
				Paused:    g.Paused(),
				Speed:     g.StepsPerUpdate(),
			})
			if state.Visualize != g.Visualize() {
				g.SetVisualize(state.Visualize)
			}
			if state.Paused != g.Paused() {
				g.TogglePause()
			}
			g.SetStepsPerUpdate(state.Speed)

			if views != nil && highlight < len(views) {
				bottom = hud.DrawSlot(px, bottom+10, highlight, views[highlight])
			}

			stats, ok := g.LastStats()
			statsPanel.SetPosition(px, bottom+10)
			statsPanel.Draw(ui.StatsPanelData{Stats: stats, Have: ok, TickCap: cfg.Agent.TickCap})
			hud.DrawControls(screenH, "[Space] Pause  [V] Visualize  [Wheel] Zoom  [Right drag] Pan  [Click] Select")
		} else {
			hud.DrawControls(screenH, "[Arrows/WASD] Steer  [R] Restart  [Space] Pause")
		}

		rl.EndDrawing()
	}
	return nil
}

// handleCameraInput applies mouse wheel zoom and right-drag panning.
func handleCameraInput(cam *camera.Camera, areaW, areaH float32) {
	mouse := rl.GetMousePosition()
	inArea := mouse.X >= 10 && mouse.X < 10+areaW && mouse.Y >= 10 && mouse.Y < 10+areaH

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && inArea {
		factor := float32(1.1)
		if wheel < 0 {
			factor = 1 / factor
		}
		cam.ZoomAt(factor, mouse.X-10, mouse.Y-10)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		cam.Pan(-delta.X, -delta.Y)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}
