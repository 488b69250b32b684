// Package main provides an intro verification tool for testing and debugging
// the opening sequence outside the host.
//
// Usage:
//
//	go run ./cmd/verify_intro [flags]
//
// Flags:
//
//	--root <dir>     Project directory holding assets/ and data/ (default: ".")
//	--seed <n>       Typing jitter seed (default: 1)
//	--speed <x>      Time scale for fast-forwarding (default: 1)
//	--verbose        Enable verbose logging
//
// Controls:
//
//	Enter/Space  - Activate entry once the prompt is visible
//	+/-          - Double / halve the time scale
//	R            - Restart the sequence from the beginning
//	Q            - Quit
//
// Purpose:
//   - Quickly iterate on typing rhythm, counter and zoom timing
//   - Check the shader path (GPU or CPU fallback) and uniforms per frame
package main

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicube/intro/pkg/config"
	"github.com/cognicube/intro/pkg/embedded"
	"github.com/cognicube/intro/pkg/game"
	"github.com/cognicube/intro/pkg/logging"
	"github.com/cognicube/intro/pkg/scenes"
)

var (
	rootDir   string
	seedFlag  uint64
	speedFlag float64
	verbose   bool
)

// IntroVerifyGame implements ebiten.Game for intro verification
type IntroVerifyGame struct {
	rm    *game.ResourceManager
	cfg   *config.IntroConfig
	scene *scenes.IntroScene
	speed float64

	readyAt    float64
	completeAt float64

	log *zap.SugaredLogger
}

// NewIntroVerifyGame creates the verifier and mounts a fresh intro
func NewIntroVerifyGame() *IntroVerifyGame {
	g := &IntroVerifyGame{
		rm:    game.NewResourceManager(nil),
		speed: speedFlag,
		log:   logging.Named("VerifyIntro"),
	}
	if !(g.speed > 0) {
		g.speed = 1
	}
	var err error
	if g.cfg, err = g.rm.LoadIntroConfig(""); err != nil {
		g.log.Warnw("using default intro config", "error", err)
	}
	g.restart()
	return g
}

func (g *IntroVerifyGame) restart() {
	if g.scene != nil {
		g.scene.Teardown()
	}
	g.readyAt, g.completeAt = -1, -1
	var scene *scenes.IntroScene
	scene = scenes.NewIntroScene(g.rm, g.cfg, rand.New(rand.NewPCG(seedFlag, seedFlag)), scenes.IntroCallbacks{
		OnReady: func() {
			g.readyAt = scene.Controller().Now()
			g.log.Infow("prompt visible", "at", g.readyAt)
		},
		OnTransitionStart: func() {
			g.log.Infow("entry activated", "at", scene.Controller().Now())
		},
		OnComplete: func() {
			g.completeAt = scene.Controller().Now()
			g.log.Infow("zoom complete", "at", g.completeAt)
		},
	})
	g.scene = scene
}

// Update updates the verifier
func (g *IntroVerifyGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.log.Info("restarting intro")
		g.restart()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.speed = min(g.speed*2, 16)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.speed = max(g.speed/2, 0.125)
	}

	g.scene.Update(g.speed / float64(config.TickRate))
	return nil
}

// Draw renders the intro plus debug info
func (g *IntroVerifyGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.scene.Draw(screen)

	ctrl := g.scene.Controller()
	st := ctrl.State()
	clock := ctrl.Clock()
	renderPath := "GPU"
	if g.scene.UsingFallback() {
		renderPath = "CPU fallback"
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Intro Verifier  seed=%d  speed=%.3gx  TPS=%.0f  FPS=%.0f\n"+
			"Phase: %s | Line %d/%d | Chars %d | Counter %02d\n"+
			"Clock: %.2fs x%.1f | Zoom: %.3f | Render: %s\n"+
			"Ready at: %s | Complete at: %s\n"+
			"Enter/Space activate | +/- speed | R restart | Q quit",
		seedFlag, g.speed, ebiten.ActualTPS(), ebiten.ActualFPS(),
		st.Phase, st.CurrentLineIndex+1, len(st.BootLines), st.TypedChars, st.LoadingPercent,
		clock.Elapsed, clock.RateMultiplier, ctrl.Progress(), renderPath,
		formatMark(g.readyAt), formatMark(g.completeAt),
	))
}

func formatMark(t float64) string {
	if t < 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fs", t)
}

// Layout returns the window size as the render surface
func (g *IntroVerifyGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

var rootCmd = &cobra.Command{
	Use:   "verify_intro",
	Short: "Run the opening sequence alone with a debug overlay",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := logging.Init(verbose); err != nil {
			return err
		}
		defer logging.Sync()

		// 直接从磁盘读取资源，修改后按 R 即可看到效果
		embedded.Init(os.DirFS(rootDir), os.DirFS(rootDir))

		g := NewIntroVerifyGame()
		defer g.scene.Teardown()

		ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
		ebiten.SetWindowTitle(fmt.Sprintf("Intro Verifier - seed %d", seedFlag))
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

		if err := ebiten.RunGame(g); err != nil {
			return fmt.Errorf("game loop: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&rootDir, "root", ".", "Project directory holding assets/ and data/")
	rootCmd.Flags().Uint64Var(&seedFlag, "seed", 1, "Typing jitter seed")
	rootCmd.Flags().Float64Var(&speedFlag, "speed", 1, "Time scale")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
