package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/tomz197/lakeside/internal/config"
	"github.com/tomz197/lakeside/internal/log"
	"github.com/tomz197/lakeside/internal/loop/client"
	"github.com/tomz197/lakeside/internal/loop/server"
)

const logFile = "lakeside/lakeside.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lakeside: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// stdout is the game screen, so logs go to a file.
	f, err := log.OpenStateFile(logFile)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	logger, err := log.New(f, log.Options{
		Level:  config.GetEnv(config.EnvLogLevel, "info"),
		Format: config.GetEnv(config.EnvLogFormat, "text"),
	})
	if err != nil {
		return err
	}

	tables, source, err := config.LoadTables()
	if err != nil {
		return err
	}
	tuning, err := config.LoadTuning()
	if err != nil {
		return err
	}
	logger.Info("starting", "tables", source, "levels", tables.LevelCount())

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	srv := server.NewServer(server.Options{Tables: tables, Tuning: &tuning, Logger: logger})
	c, err := client.NewClient(srv, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: os.Getenv("USER"),
		Renderer: lipgloss.NewRenderer(os.Stdout),
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	if err := c.Run(); err != nil {
		logger.Error("game error", "err", err)
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}
