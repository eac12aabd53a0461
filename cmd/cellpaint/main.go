package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/lixenwraith/cellpaint/config"
	"github.com/lixenwraith/cellpaint/paint"
	"github.com/lixenwraith/cellpaint/picture"
	"github.com/lixenwraith/cellpaint/terminal"
)

// maxFailures is the number of consecutive failed frames tolerated before exit
const maxFailures = 3

var (
	configFlag  = flag.String("config", "", "Config file (default: XDG config dir, then ./cellpaint.toml)")
	colorFlag   = flag.String("color", "", "Color mode: auto, truecolor or 256")
	framesFlag  = flag.Int("frames", 1, "Frames to render, 0 runs until interrupted")
	fpsFlag     = flag.Int("fps", 10, "Frame rate when animating")
	widthFlag   = flag.Int("width", 0, "Picture width in columns, 0 fits the terminal")
	debugFlag   = flag.Bool("debug", false, "Enable debug logging to logs/cellpaint.log")
	captionFlag = flag.String("caption", "", "Text drawn over the picture")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()
	os.Exit(run())
}

// run sets up and drives the painter, returning the process exit code
// so deferred cleanup completes before exit
func run() (code int) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	logFile := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	var img image.Image
	if cfg.Image.Path != "" {
		img, err = loadImage(cfg.Image.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading image: %v\n", err)
			return 1
		}
		b := img.Bounds()
		log.Printf("loaded %s (%dx%d)", cfg.Image.Path, b.Dx(), b.Dy())
	}

	backend := terminal.NewBackend(nil)
	if err := backend.Init(); err != nil {
		if !errors.Is(err, terminal.ErrNotTerminal) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		// Redirected output still gets the byte stream
		log.Printf("stdout: %v, using default size", err)
	}
	// Fini is idempotent; the panic path below calls it first
	defer backend.Fini()

	// Restore the terminal if anything below panics
	defer func() {
		if r := recover(); r != nil {
			backend.Fini()
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCELLPAINT CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			code = 1
		}
	}()

	colorMode, ok := cfg.ColorMode()
	if !ok {
		colorMode = terminal.DetectColorMode()
	}
	log.Printf("color mode %s", colorMode)

	s := &scene{img: img, width: cfg.Image.Width}
	s.resize(backend.Size())
	if cfg.Caption.Text != "" {
		s.caption = &picture.Caption{
			Text: cfg.Caption.Text,
			At:   paint.Point{X: cfg.Caption.X, Y: cfg.Caption.Y},
			Ink:  cfg.Ink(),
		}
	}

	resizeCh := make(chan [2]int, 1)
	backend.SetResizeHandler(func(w, h int) {
		// Keep only the latest size
		select {
		case <-resizeCh:
		default:
		}
		resizeCh <- [2]int{w, h}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &runner{
		painter: paint.New(backend, colorMode),
		scene:   s,
		frames:  cfg.Frames,
		rate:    time.Second / time.Duration(cfg.FPS),
		resize:  resizeCh,
	}
	if err := r.run(ctx); err != nil {
		log.Printf("run: %v", err)
		backend.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads config files, then applies flags given on the command line
func loadConfig() (*config.Config, error) {
	var paths []string
	if *configFlag != "" {
		if _, err := os.Stat(*configFlag); err != nil {
			return nil, err
		}
		paths = append(paths, *configFlag)
	}

	cfg, err := config.Load(paths...)
	if err != nil {
		return nil, err
	}

	applyFlags(cfg)
	if flag.NArg() > 0 {
		cfg.Image.Path = flag.Arg(0)
	}
	return cfg, cfg.Validate()
}

// applyFlags copies explicitly set flags over the loaded config
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "color":
			cfg.Color = *colorFlag
		case "frames":
			cfg.Frames = *framesFlag
		case "fps":
			cfg.FPS = *fpsFlag
		case "width":
			cfg.Image.Width = *widthFlag
		case "debug":
			cfg.Debug = *debugFlag
		case "caption":
			cfg.Caption.Text = *captionFlag
		}
	})
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: cellpaint [options] [image]")
	fmt.Fprintln(os.Stderr, "\nWithout an image a gradient test pattern is drawn.")
	fmt.Fprintln(os.Stderr, "Supported formats: PNG, JPEG, GIF")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}
