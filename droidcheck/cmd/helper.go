package cmd

import (
	"crypto/tls"
	"io"
	"log"
	"os"
	"time"

	"emperror.dev/errors"
	"github.com/je4/utils/v2/pkg/zLogger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/shieldtechhub/droidcheck/pkg/checklist"
	"github.com/shieldtechhub/droidcheck/pkg/projectfs"
	ublogger "gitlab.switch.ch/ub-unibas/go-ublogger/v2"
	"go.ub.unibas.ch/cloud/certloader/v2/pkg/loader"
)

func startTimer() *timer {
	t := &timer{}
	t.Start()
	return t
}

type timer struct {
	start time.Time
}

func (t *timer) Start() {
	t.start = time.Now()
}

func (t *timer) Duration() time.Duration {
	return time.Since(t.start)
}

func (t *timer) String() string {
	return t.Duration().String()
}

// createLogger builds the logger from the Log section of the config. The
// returned function releases log file, logstash connection and tls loader.
func createLogger(runID string) (zLogger.ZLogger, func()) {
	hostname, err := os.Hostname()
	if err != nil {
		log.Fatalf("cannot get hostname: %v", err)
	}

	var closers []io.Closer
	var loggerTLSConfig *tls.Config
	var loggerLoader io.Closer
	if conf.Log.Stash.TLS != nil {
		loggerTLSConfig, loggerLoader, err = loader.CreateClientLoader(conf.Log.Stash.TLS, nil)
		if err != nil {
			log.Fatalf("cannot create client loader: %v", err)
		}
		closers = append(closers, loggerLoader)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	_logger, _logstash, _logfile, err := ublogger.CreateUbMultiLoggerTLS(conf.Log.Level, conf.Log.File,
		ublogger.SetDataset(conf.Log.Stash.Dataset),
		ublogger.SetLogStash(conf.Log.Stash.LogstashHost, conf.Log.Stash.LogstashPort, conf.Log.Stash.Namespace, conf.Log.Stash.LogstashTraceLevel),
		ublogger.SetTLS(conf.Log.Stash.TLS != nil),
		ublogger.SetTLSConfig(loggerTLSConfig),
	)
	if err != nil {
		log.Fatalf("cannot create logger: %v", err)
	}
	if _logstash != nil {
		closers = append(closers, _logstash)
	}
	if _logfile != nil {
		closers = append(closers, _logfile)
	}

	l2 := _logger.With().Timestamp().Str("host", hostname).Str("run", runID).Logger()
	var logger zLogger.ZLogger = &l2
	return logger, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
	}
}

// initializeFSFactory creates the read only factory for project roots.
func initializeFSFactory(logger zLogger.ZLogger) (*projectfs.Factory, error) {
	fsFactory, err := projectfs.NewFactory(logger)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create filesystem factory")
	}
	return fsFactory, nil
}

// loadProfile returns the built-in profile for an empty name.
func loadProfile(name string) (*checklist.Profile, error) {
	if name == "" {
		return checklist.DefaultProfile()
	}
	return checklist.LoadProfileFile(name)
}
