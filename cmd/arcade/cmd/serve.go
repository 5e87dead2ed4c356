package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maxwellsmart84/portfolio-2025/internal/game"
	"github.com/maxwellsmart84/portfolio-2025/internal/logger"
	"github.com/maxwellsmart84/portfolio-2025/internal/remote"
	"github.com/maxwellsmart84/portfolio-2025/internal/scores"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a session in real time and stream it over a websocket",
	Long: `Run one game session on a real-time clock and serve it over HTTP.

Clients connect to /ws, receive a JSON snapshot after every physics step
and send input back as JSON messages:

  {"type":"key","key":"ArrowRight","down":true}
  {"type":"touch","down":true,"x":0.8}
  {"type":"continue"}
  {"type":"reset"}

GET /snapshot returns the most recent snapshot.

Example:
  arcade serve
  arcade serve --addr :9000 --log-format json`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default localhost:8080)")
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	if _, err := setupLogging(s, os.Stderr); err != nil {
		return err
	}
	log := logger.Log.WithField("component", "serve")

	session, err := newSession(s)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := game.NewRunner(session, s.TypeInterval)
	hub := remote.NewHub(runner)
	runner.Observe(hub.Broadcast)

	store, err := openStore(s)
	if err != nil {
		log.WithError(err).Warn("run history disabled")
	} else {
		defer store.Close()
		runner.Observe(finishedRuns(ctx, store, session.Level().Name, session.TickDuration()))
	}

	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 2)
	go func() {
		log.WithField("addr", s.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("serving http: %w", err)
		}
	}()
	go func() { errc <- runner.Run(ctx) }()

	select {
	case <-ctx.Done():
	case err = <-errc:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		log.WithError(serr).Warn("shutdown")
	}
	// Shutdown leaves hijacked websocket connections to the hub.
	hub.Close()
	log.Info("stopped")

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// finishedRuns returns an observer that records each run once, on the first
// snapshot of its celebration.
func finishedRuns(ctx context.Context, store *scores.Store, level string, tick time.Duration) game.Observer {
	celebrating := false
	celebratingPhase := game.PhaseCelebrating.String()
	return func(snap game.Snapshot) {
		if snap.Phase != celebratingPhase {
			celebrating = false
			return
		}
		if celebrating {
			return
		}
		celebrating = true
		run, err := store.Record(ctx, scores.Run{
			Level:    level,
			Score:    snap.Score,
			Coins:    snap.Collected,
			Total:    snap.Total,
			Ticks:    snap.Tick,
			Duration: time.Duration(snap.Tick) * tick,
		})
		if err != nil {
			logger.Log.WithError(err).Error("recording run")
			return
		}
		logger.Log.WithFields(logrus.Fields{"id": run.ID, "score": run.Score}).Info("run recorded")
	}
}
