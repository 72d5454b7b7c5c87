package main

import (
	"flag"
	"log/slog"
	"os"

	"calcHistory/internal/app"
)

func main() {
	envFile := flag.String("env", "", "путь к .env (по умолчанию ./.env)")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := app.LoadCfg(files...)
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	if err := app.New(cfg).Run(); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}
