// Command poller submits one render request to the composer API and follows
// it until the image is ready or the render fails.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"framecraft/internal/composer"
	"framecraft/internal/config"
	"framecraft/internal/pkg/logger"
	"framecraft/internal/pkg/shutdown"
	"framecraft/internal/poller"
)

func main() {
	config.LoadDotEnv()
	cfg := config.LoadPoller()

	var sub composer.Submission
	flag.StringVar(&sub.Search, "search", "", "subject keyword for the background photo")
	flag.StringVar(&sub.Title, "title", "", "title printed on the image")
	flag.StringVar(&sub.Style, "style", "style_1", "style_1, style_2 or style_3")
	flag.StringVar(&cfg.ComposerURL, "url", cfg.ComposerURL, "composer render endpoint")
	flag.DurationVar(&cfg.PollInterval, "interval", cfg.PollInterval, "wait between status lookups")
	flag.Parse()

	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Output:      os.Stderr,
		ServiceName: "framecraft-poller",
	})

	// Ctrl-C stops polling.
	shutdownMgr := shutdown.NewManager(log, 5*time.Second)
	go shutdownMgr.Wait()

	p := poller.New(poller.Options{
		Client:    poller.NewAPIClient(cfg.ComposerURL, nil),
		Presenter: poller.NewConsolePresenter(os.Stdout),
		Interval:  cfg.PollInterval,
		Logger:    log,
	})

	if _, err := p.Run(shutdownMgr.Context(), sub); err != nil {
		log.Debug("run ended with error", "error", err.Error())
		fmt.Fprintln(os.Stderr, "render did not complete")
		os.Exit(1)
	}
}
