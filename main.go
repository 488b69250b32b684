package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/cognicube/intro/pkg/app"
	"github.com/cognicube/intro/pkg/config"
	"github.com/cognicube/intro/pkg/embedded"
	"github.com/cognicube/intro/pkg/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Window flags
	fullscreen bool
	watchDir   string
	seed       uint64
)

// rootCmd 打开窗口播放开场序列
var rootCmd = &cobra.Command{
	Use:   "cognicube",
	Short: "CogniCube opening sequence",
	Long: `Plays the CogniCube opening sequence full-window: a raymarched fractal
tunnel, the boot script and loading counter, then a zoom into the marker
cube that reveals the main content.

Press Enter, Space or click the prompt to enter. F11 toggles fullscreen.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		embedded.Init(assetsFS, dataFS)
		_, err := logging.Init(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runWindow,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Intro config YAML (default: embedded data/intro.yaml)")

	rootCmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "Start in fullscreen")
	rootCmd.Flags().StringVar(&watchDir, "watch", "", "Load assets from this project directory and hot-reload shader/config changes")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "Typing jitter seed (0 = random)")

	rootCmd.AddCommand(snapshotCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	log := logging.Named("Main")

	introApp, err := app.NewApp(app.Config{
		Verbose:    verbose,
		ConfigPath: configPath,
		WatchDir:   watchDir,
		Seed:       seed,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer func() {
		if err := introApp.Close(); err != nil {
			log.Warnw("failed to close app", "error", err)
		}
	}()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(fullscreen)

	log.Infow("starting", "fullscreen", fullscreen, "watch", watchDir != "")
	if err := ebiten.RunGame(introApp); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
