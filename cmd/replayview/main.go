// Command replayview serves recorded snake rounds over HTTP.
//
// It points DuckDB at the parquet replay files written by the game's
// -record mode, exposes a small JSON API, and streams individual rounds
// over a websocket at their recorded step rate. The built-in index page
// renders replays on a canvas with no further assets.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jonathandrl24/Multiplayer-Snake-Game/logging"
)

func main() {
	listen := flag.String("listen", ":8321", "HTTP listen address")
	data := flag.String("data", "data/replays", "Comma-separated directories containing replay parquet files")
	refresh := flag.Duration("refresh", 30*time.Second, "How often to re-glob the data directories")
	flag.Parse()

	logging.SetupStderr(slog.LevelInfo)

	roots := []string{}
	for _, r := range strings.Split(*data, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roots = append(roots, r)
		}
	}
	if len(roots) == 0 {
		fmt.Fprintln(os.Stderr, "no data directories given")
		os.Exit(1)
	}

	srv := NewServer(roots, *refresh)
	defer srv.dbCache.Close()

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	slog.Info("replayview listening", "addr", *listen, "roots", roots)
	if err := http.ListenAndServe(*listen, mux); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
