package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seminar-checkin/internal/metric"
	"seminar-checkin/internal/model"
	"seminar-checkin/internal/route"
	"seminar-checkin/internal/utils"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	as := utils.NewAppState()

	if err := model.CreateSchema(as.BunDB); err != nil {
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}

	go metric.Init(as)

	// http server
	go func() {
		muxer := http.NewServeMux()
		muxer.Handle("GET /metrics", promhttp.Handler())
		muxer.Handle("GET /blob/", http.StripPrefix("/blob/",
			http.FileServer(http.Dir(as.Config.GetBlobDir()))))

		route.CheckIn(muxer, as)
		route.Register(muxer, as)
		route.UploadSlip(muxer, as)
		route.Lookup(muxer, as)
		route.ListAttendees(muxer, as)
		route.Import(muxer, as)
		route.ForceCheckIn(muxer, as)
		route.UpdateAttendee(muxer, as)
		route.DeleteAttendee(muxer, as)
		route.ClearSlip(muxer, as)
		route.ExportAttendees(muxer, as)
		route.ExportHotelFoodSummary(muxer, as)
		route.ExportNamecards(muxer, as)

		if err := http.ListenAndServe(":"+as.Config.GetPort(), muxer); err != nil {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	slog.Info("app is now running, press Ctrl+C to exit", "port", as.Config.GetPort())

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan
	as.GracefulShutdown()

	slog.Info("Gracefully shutting down...")
}
