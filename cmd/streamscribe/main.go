package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/streamscribe/streamscribe/internal/cache"
	"github.com/streamscribe/streamscribe/internal/config"
	"github.com/streamscribe/streamscribe/internal/engine"
	"github.com/streamscribe/streamscribe/internal/resolve"
	"github.com/streamscribe/streamscribe/internal/transcribe"
	"github.com/streamscribe/streamscribe/internal/ui"
)

func main() {
	myApp := app.NewWithID(config.AppID)
	myWindow := myApp.NewWindow(config.AppName)
	myWindow.Resize(fyne.NewSize(800, 600))

	eng := engine.NewCLIEngine("")
	if !eng.Available() {
		log.Printf("yt-dlp not found on PATH; downloads will fail until it is installed")
	}

	metaCache := cache.New(config.CacheSize)
	resolver := resolve.New(metaCache, eng)
	transcriber := transcribe.NewService()

	ui.NewRootUI(myWindow, myApp, resolver, eng, transcriber)

	myWindow.ShowAndRun()
}
