// ezand fetches the day's prayer times for the configured location and, at
// each prayer time, wakes the machine and opens the configured ezan video in
// the default browser. It also serves a small dashboard and Prometheus
// metrics.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/mkarci/ezan-tools/internal/action"
	"github.com/mkarci/ezan-tools/internal/ezanconfig"
	"github.com/mkarci/ezan-tools/internal/prayer"
	"github.com/mkarci/ezan-tools/internal/scheduler"
	"github.com/mkarci/ezan-tools/internal/teelogger"
)

var (
	configPath = flag.String("config",
		"ezan_config.json",
		"Path to the JSON configuration file")

	listen = flag.String("listen",
		"localhost:8080",
		"[host]:port on which to serve the dashboard and /metrics")

	mqttBroker = flag.String("mqtt_broker",
		"",
		"MQTT broker address for github.com/eclipse/paho.mqtt.golang (e.g. tcp://localhost:1883). Empty disables status publishing")
)

var (
	fetchSuccesses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ezan_fetch_successes_total",
		Help: "Successful prayer time fetches",
	})
	fetchFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ezan_fetch_failures_total",
		Help: "Failed prayer time fetches",
	})
	triggersFired = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ezan_triggers_total",
		Help: "Triggers fired, by prayer",
	}, []string{"prayer"})
	triggersSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ezan_triggers_skipped_total",
		Help: "Triggers skipped because of office mode",
	})
	lastFetch = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ezan_last_fetch_timestamp",
		Help: "Timestamp of the last successful fetch",
	})
	nextPrayerTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ezan_next_prayer_timestamp",
		Help: "Timestamp of the next prayer trigger (0 when exhausted for the day)",
	})
)

func init() {
	prometheus.MustRegister(fetchSuccesses, fetchFailures, triggersFired,
		triggersSkipped, lastFetch, nextPrayerTime)
}

var hostname = func() string {
	host, err := os.Hostname()
	if err != nil {
		log.Fatal(err)
	}
	return host
}()

// server holds what the dashboard handlers and the scheduler loop share.
// The mutex guards the config fields the dashboard may change (mode,
// volume); everything else is read-only after startup.
type server struct {
	mu      sync.Mutex
	cfg     *ezanconfig.Config
	cfgPath string

	log       *log.Logger
	source    *prayer.Source
	actions   scheduler.Actions
	loop      *scheduler.Loop
	publisher *statusPublisher
}

func (s *server) mode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Mode
}

func (s *server) volume() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Audio.Volume
}

func (s *server) setMode(mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Mode = mode
	return s.cfg.Save(s.cfgPath)
}

func (s *server) setVolume(volume int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Audio.Volume = volume
	return s.cfg.Save(s.cfgPath)
}

// prayerUnix converts a time of day on the schedule's date to a unix
// timestamp in local time.
func prayerUnix(date time.Time, at prayer.TimeOfDay) int64 {
	y, m, d := date.Date()
	return time.Date(y, m, d, int(at)/60, int(at)%60, 0, 0, date.Location()).Unix()
}

func (s *server) onEvent(ev scheduler.Event) {
	switch ev.Type {
	case scheduler.EventFetched:
		fetchSuccesses.Inc()
		lastFetch.Set(float64(time.Now().Unix()))
	case scheduler.EventFetchFailed:
		fetchFailures.Inc()
	case scheduler.EventFired:
		triggersFired.With(prometheus.Labels{"prayer": string(ev.Prayer)}).Inc()
	case scheduler.EventSkipped:
		triggersSkipped.Inc()
	}
	if ev.Schedule != nil {
		if _, at, ok := ev.Schedule.Next(time.Now()); ok {
			nextPrayerTime.Set(float64(prayerUnix(ev.Schedule.Date(), at)))
		} else {
			nextPrayerTime.Set(0)
		}
	}
	if s.publisher != nil {
		s.publisher.publish(s.currentStatus())
	}
}

func listenAndServe(ctx context.Context, srv *http.Server) error {
	errC := make(chan error)
	go func() {
		errC <- srv.ListenAndServe()
	}()
	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
		timeout, canc := context.WithTimeout(context.Background(), 250*time.Millisecond)
		defer canc()
		_ = srv.Shutdown(timeout)
		return ctx.Err()
	}
}

func ezand() error {
	flag.Parse()

	// An incomplete config (missing prayer keys, placeholder URLs) is
	// fatal before the loop starts.
	cfg, err := ezanconfig.Load(*configPath)
	if err != nil {
		return err
	}
	logger := teelogger.NewFile(cfg.LogFile)

	srv := &server{
		cfg:     cfg,
		cfgPath: *configPath,
		log:     logger,
		source:  &prayer.Source{Location: cfg.Location},
		actions: action.New(),
	}

	if *mqttBroker != "" {
		pub, err := newStatusPublisher(*mqttBroker)
		if err != nil {
			logger.Printf("WARNING: %v", err)
		} else {
			srv.publisher = pub
		}
	}

	srv.loop = &scheduler.Loop{
		Fetch:   srv.source.Fetch,
		Actions: srv.actions,
		URL:     cfg.URL,
		Volume:  srv.volume,
		Skip: func(prayer.Name) bool {
			return srv.mode() == ezanconfig.ModeOffice
		},
		Log:    logger,
		Notify: srv.onEvent,
		Settle: 2 * time.Second,
	}

	mux := http.NewServeMux()
	mux.Handle("/", handleError(srv.index))
	mux.Handle("/api/status", handleError(srv.apiStatus))
	mux.Handle("/api/mode", handleError(srv.apiMode))
	mux.Handle("/api/volume", handleError(srv.apiVolume))
	mux.Handle("/api/test", handleError(srv.apiTest))
	mux.Handle("/api/logs", handleError(srv.apiLogs))
	mux.Handle("/metrics", promhttp.Handler())

	logger.Printf("ezand starting: location %s, %s (method %d), poll interval %v, dashboard on http://%s",
		cfg.Location.City, cfg.Location.Country, cfg.Location.Method, cfg.PollInterval(), *listen)

	eg, ctx := errgroup.WithContext(context.Background())
	eg.Go(func() error {
		return srv.loop.Run(ctx, cfg.PollInterval())
	})
	eg.Go(func() error {
		return listenAndServe(ctx, &http.Server{
			Handler: mux,
			Addr:    *listen,
		})
	})
	return eg.Wait()
}

func main() {
	if err := ezand(); err != nil {
		log.Fatal(err)
	}
}
