package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/mux"
	"github.com/navionguy/koneko/canvas"
	"github.com/navionguy/koneko/cli"
	"github.com/navionguy/koneko/fileserv"
	"github.com/navionguy/koneko/keybuffer"
	"github.com/navionguy/koneko/localfiles"
	"github.com/navionguy/koneko/object"
	"github.com/navionguy/koneko/settings"
	"github.com/rs/zerolog"
)

// the pieces of a running interpreter
type host struct {
	cfg    settings.Config
	log    zerolog.Logger
	env    *object.Environment
	screen *canvas.Screen
	frame  *frame // last settled picture, what the server shows
	keys   *keybuffer.KeyBuffer
	cache  *localfiles.Cache // only when the drive is remote
	router *mux.Router       // only when listening
}

func main() {
	cfg, show, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if show {
		if err := cfg.Write(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	interactive := cli.IsTerminal(os.Stdin)
	logger := newLogger(os.Stderr, cli.IsTerminal(os.Stderr), cfg)

	h, err := startup(cfg, logger, cli.NewConsole(os.Stdout, cli.IsTerminal(os.Stdout)))
	if err != nil {
		logger.Fatal().Err(err).Msg("startup failed")
	}

	if h.router != nil {
		go func() {
			logger.Info().Str("listen", cfg.Listen).Msg("serving")
			if err := http.ListenAndServe(cfg.Listen, h.router); err != nil {
				logger.Error().Err(err).Msg("server stopped")
			}
		}()
	}

	if err := h.session().run(interactive, os.Stdin); err != nil {
		logger.Error().Err(err).Msg("input failed")
	}
	h.shutdown()
}

// parseFlags reads the settings file named by -config and then lets
// any flag that was given override it
func parseFlags(args []string) (settings.Config, bool, error) {
	fs := flag.NewFlagSet("koneko", flag.ContinueOnError)
	def := settings.Default()

	config := fs.String("config", "", "yaml settings file")
	show := fs.Bool("print-config", false, "print the settings in effect and exit")
	listen := fs.String("listen", def.Listen, "http address serving the drive, screen and keyboard")
	drive := fs.String("drive", def.Drive, "directory holding program files")
	remote := fs.String("remote", def.Remote, "use the drive of another koneko server")
	enc := fs.String("encoding", def.Encoding, "text encoding of program files")
	budget := fs.Duration("budget", def.Budget, "longest a program may run without a refresh")
	level := fs.String("log-level", def.LogLevel, "log level")
	history := fs.String("history", def.History, "line editor history file")
	dump := fs.Bool("dump", def.Dump, "dump the tree of each immediate line")

	if err := fs.Parse(args); err != nil {
		return def, false, err
	}

	cfg := def
	if len(*config) > 0 {
		var err error
		if cfg, err = settings.Load(*config); err != nil {
			return cfg, false, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.Listen = *listen
		case "drive":
			cfg.Drive = *drive
		case "remote":
			cfg.Remote = *remote
		case "encoding":
			cfg.Encoding = *enc
		case "budget":
			cfg.Budget = *budget
		case "log-level":
			cfg.LogLevel = *level
		case "history":
			cfg.History = *history
		case "dump":
			cfg.Dump = *dump
		}
	})

	return cfg, *show, cfg.Validate()
}

// newLogger writes readable lines to a terminal and json anywhere else
func newLogger(w io.Writer, pretty bool, cfg settings.Config) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	lvl, err := cfg.Level()
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// startup builds the environment and everything plugged into it,
// out is where printed lines go besides the screen
func startup(cfg settings.Config, logger zerolog.Logger, out object.Console) (*host, error) {
	h := &host{
		cfg:    cfg,
		log:    logger,
		screen: canvas.NewScreen(),
		keys:   keybuffer.New(),
	}
	h.frame = &frame{img: h.screen.Snapshot()}

	h.env = object.NewEnvironment(canvas.NewConsole(h.screen, out))
	h.env.SetCanvas(h.screen)
	h.env.SetInput(h.keys)
	h.env.SetClock(object.NewSystemClock())

	drive, err := h.openDrive()
	if err != nil {
		return nil, err
	}
	h.env.SetStorage(drive)

	if len(cfg.Listen) > 0 {
		srv := &fileserv.Server{
			Drive:  drive,
			Screen: h.frame,
			Keys:   h.keys,
			Log:    logger.With().Str("component", "fileserv").Logger(),
		}
		h.router = srv.Router()
	}
	return h, nil
}

// openDrive is the remote drive behind a cache, or a local directory
func (h *host) openDrive() (object.Storage, error) {
	if len(h.cfg.Remote) > 0 {
		h.log.Info().Str("remote", h.cfg.Remote).Msg("using remote drive")
		h.cache = localfiles.NewCache(fileserv.NewClient(h.cfg.Remote, nil))
		return h.cache, nil
	}

	drive, err := localfiles.NewDrive(h.cfg.Drive, h.cfg.Encoding)
	if err != nil {
		return nil, err
	}
	h.log.Debug().Str("drive", drive.Dir()).Msg("using local drive")
	return drive, nil
}

// settled runs between batches, the server only ever sees whole frames
func (h *host) settled() {
	h.frame.update(h.screen.Snapshot())
	h.log.Trace().Int("cursor", h.env.Cursor()).Msg("frame")
}

type frame struct {
	mu  sync.Mutex
	img *image.Paletted
}

func (f *frame) update(img *image.Paletted) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.img = img
}

// WritePNG encodes the last frame
func (f *frame) WritePNG(w io.Writer) error {
	f.mu.Lock()
	img := f.img
	f.mu.Unlock()

	return png.Encode(w, img)
}

type hostSession struct {
	*cli.Session
	cfg settings.Config
}

func (h *host) session() hostSession {
	ss := cli.New(h.env, cli.Options{
		Budget: h.cfg.Budget,
		Dump:   h.cfg.Dump,
		Yield:  h.settled,
		Keys:   h.keys,
		Log:    h.log,
	})
	return hostSession{Session: ss, cfg: h.cfg}
}

// run prompts on a terminal, otherwise the input is a script
func (hs hostSession) run(interactive bool, in io.Reader) error {
	if interactive {
		return hs.Interactive(hs.cfg.Prompt, hs.cfg.History)
	}
	return hs.Script(in)
}

// shutdown pushes any remote writes that never made it
func (h *host) shutdown() {
	if h.cache == nil {
		return
	}
	if err := h.cache.Flush(); err != nil {
		h.log.Error().Err(err).Msg("unsaved files")
	}
}
