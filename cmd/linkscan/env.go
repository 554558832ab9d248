package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nikbrunner/linkscan/internal/config"
	"github.com/nikbrunner/linkscan/internal/library"
	"github.com/nikbrunner/linkscan/internal/logger"
	"github.com/nikbrunner/linkscan/internal/scan"
	"github.com/nikbrunner/linkscan/internal/storage"
)

var errSourceConflict = errors.New("only one of --url, --file, --clipboard, --tab may be given")

// env holds what every command needs: config, logger and the bookmark library.
type env struct {
	cfg   *config.Config
	log   logger.Logger
	store storage.Storage
	lib   *library.Library
}

// setup loads config and opens the library. With toFile the logger writes to
// cfg.Log.File so it does not draw over the panel.
func setup(c *cli.Context, toFile bool) (*env, error) {
	path := c.String("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, fmt.Errorf("config path: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if db := c.String("db"); db != "" {
		cfg.Storage.Path = db
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	logCfg := logger.Config{Level: cfg.Log.Level}
	if toFile {
		logCfg.OutputPaths = []string{cfg.Log.File}
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open bookmark store: %w", err)
	}

	return &env{
		cfg:   cfg,
		log:   log,
		store: store,
		lib:   library.New(store, log),
	}, nil
}

func (e *env) close() {
	if err := storage.Close(e.store); err != nil {
		e.log.Warn("close bookmark store", logger.Error(err))
	}
	_ = e.log.Sync()
}

// sourceFrom picks the page source named by the source flags.
// Stdin is used when none is given.
func sourceFrom(c *cli.Context, cfg *config.Config) (scan.Source, error) {
	given := 0
	for _, set := range []bool{
		c.String("url") != "",
		c.String("file") != "",
		c.Bool("clipboard"),
		c.Bool("tab"),
	} {
		if set {
			given++
		}
	}
	if given > 1 {
		return nil, errSourceConflict
	}
	if c.Bool("article") && c.String("url") == "" {
		return nil, errors.New("--article needs --url")
	}

	switch {
	case c.String("url") != "":
		return scan.HTTPSource{URL: c.String("url"), Article: c.Bool("article")}, nil
	case c.String("file") != "":
		return scan.Reader{Path: c.String("file")}, nil
	case c.Bool("clipboard"):
		return scan.NewClipboardSource(), nil
	case c.Bool("tab"):
		addr := c.String("debug-addr")
		if addr == "" {
			addr = cfg.Browser.DebugAddr
		}
		return scan.TabSource{DebugAddr: addr}, nil
	default:
		return scan.Reader{}, nil
	}
}
