package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"birdquiz/internal/cli"
	"birdquiz/internal/config"
	"birdquiz/internal/quiz"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	mode := flag.String("mode", quiz.ModeLeisure, "quiz mode: leisure or timed")
	timed := flag.Bool("timed", false, "shorthand for -mode timed")
	file := flag.String("file", "", "question file name (default from config)")
	server := flag.String("server", cfg.ContentURL, "content base URL; empty plays from the local content dir")
	dir := flag.String("dir", cfg.ContentDir, "local content directory")
	flag.Parse()

	if *timed {
		*mode = quiz.ModeTimed
	}

	opts := cli.Options{
		Mode:       *mode,
		File:       *file,
		ContentURL: *server,
		ContentDir: *dir,
		Fallback:   cfg.FallbackFile,
	}

	if err := cli.Run(context.Background(), os.Stdin, os.Stdout, opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
