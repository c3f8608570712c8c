// ROI Editor - draw and reshape regions of interest on an image.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"roi-editor/internal/app"
	"roi-editor/internal/version"
	"roi-editor/ui/mainwindow"
	"roi-editor/ui/prefs"
)

const hotReloadInterval = 2 * time.Second

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("ROI Editor %s (built %s, commit %s)",
		version.Version, version.BuildTime, version.GitCommit)

	fyneApp := fyneapp.NewWithID("roi-editor")
	fyneApp.Settings().SetTheme(&app.RoiEditorTheme{})

	state := app.NewState()
	p := prefs.Load()

	win := mainwindow.New(fyneApp, state, p)

	// Open an image passed on the command line, or the last one used.
	if len(os.Args) > 1 {
		if err := win.LoadImage(os.Args[1]); err != nil {
			log.Printf("load %s: %v", os.Args[1], err)
		}
	} else if last := p.String(prefs.KeyLastImagePath); last != "" {
		if err := win.LoadImage(last); err != nil {
			log.Printf("reopen %s: %v", last, err)
		}
	}

	if reloader := app.NewHotReloader(hotReloadInterval); reloader != nil {
		reloader.OnNewBinary(func() {
			dialog.ShowConfirm("New build detected",
				"A newer binary is available. Restart now?",
				func(restart bool) {
					if !restart {
						reloader.ResetBaseline()
						return
					}
					win.SavePreferences()
					if err := reloader.Restart(); err != nil {
						log.Printf("restart: %v", err)
					}
				}, win)
		})
		reloader.Start()
		defer reloader.Stop()
	}

	win.SetCloseIntercept(func() {
		win.SavePreferences()
		win.Close()
	})

	win.ShowAndRun()
}
