package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/Jacobbrewer1/fenrir/cmd/bot/config"
	"github.com/Jacobbrewer1/fenrir/pkg/logging"
)

func main() {
	a, err := InitializeApp()
	if err != nil {
		log.Fatalln(err)
	}
	config.Parse(a.Logger)
	a.Info("Starting application")
	if err := a.Run(); err != nil {
		a.Error("Error running application", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	}
}
