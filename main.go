package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"github.com/spacestills/spacestills/internal/config"
	"github.com/spacestills/spacestills/internal/fetch"
	"github.com/spacestills/spacestills/internal/ui"
	"github.com/spacestills/spacestills/internal/viewer"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.spacestills.spacestills"
	AppName = "Spacestills"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()

	log.Info().Str("version", version).Msg("spacestills starting")

	settings := config.NewSettings()

	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewViewerTheme())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(config.FrameWidth, config.FrameHeight+120))

	// Initialize services
	fetcher := fetch.NewService(settings.FeedURL, settings.FetchTimeout, log)
	controller := viewer.New(fetcher, settings, log)

	// Create and setup UI
	ui.NewRootUI(myWindow, controller, settings)

	// Stop the reload timer when the window goes away
	myWindow.SetOnClosed(controller.Close)

	// First fetch, then show and run
	controller.Start()
	myWindow.ShowAndRun()
}
