package wellbeing

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"clementus360/mood-tracker/config"
	"clementus360/mood-tracker/detect"
	"clementus360/mood-tracker/metrics"
	"clementus360/mood-tracker/notify"
	"clementus360/mood-tracker/store"
	"clementus360/mood-tracker/supabase"
)

// OpenStore opens the backend named by cfg.Driver.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return store.OpenSQLite(cfg.DSN)
	case "postgres":
		return store.OpenPostgres(ctx, cfg.DSN)
	case "supabase":
		return supabase.New(cfg.SupabaseURL, cfg.SupabaseKey)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// BuildNotifiers returns a notifier for every transport that is configured.
func BuildNotifiers(cfg *config.Config) []notify.Notifier {
	var out []notify.Notifier
	if cfg.SMTP.Sender != "" && cfg.SMTP.Host != "" {
		out = append(out, notify.NewEmailNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Sender, cfg.SMTP.Password))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		out = append(out, notify.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.AlertTopic))
	}
	if cfg.Webhook.URL != "" {
		out = append(out, notify.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Secret))
	}
	return out
}

// App is a fully wired service plus the resources it owns.
type App struct {
	Service *Service
	Store   store.Store

	closers []func() error
}

// Close waits for background evaluations and releases the store and transports.
func (a *App) Close() error {
	a.Service.Wait()
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Bootstrap wires a Service from configuration.
func Bootstrap(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*App, error) {
	st, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	app := &App{Store: st, closers: []func() error{st.Close}}

	if cfg.Store.SeedCatalog {
		n, err := store.SeedCatalog(ctx, st, config.DefaultTaskCatalog())
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("seed task catalog: %w", err)
		}
		if n > 0 {
			logger.WithField("tasks", n).Info("Seeded default task catalog")
		}
	}

	notifiers := BuildNotifiers(cfg)
	for _, n := range notifiers {
		if c, ok := n.(interface{ Close() error }); ok {
			app.closers = append(app.closers, c.Close)
		}
	}
	dispatcher := notify.NewDispatcher(cfg.Alerts.Timeout, logger, notifiers...)
	if len(notifiers) == 0 {
		logger.Warn("No alert transports configured, alerts will be logged only")
	} else {
		logger.WithField("transports", dispatcher.Notifiers()).Info("Alert transports ready")
	}

	var text detect.Detector
	if cfg.Detect.TextURL != "" {
		text = detect.NewTextClassifier(cfg.Detect.TextURL, cfg.Detect.TextToken, cfg.Detect.Timeout)
	}

	app.Service = New(Deps{
		Store:      st,
		Engine:     cfg.Engine,
		Detectors:  detect.NewSet(text),
		Dispatcher: dispatcher,
		Metrics:    metrics.Default(),
		Logger:     logger,
		Options: Options{
			HREmail:          cfg.Alerts.HREmail,
			ManagerEmail:     cfg.Alerts.ManagerEmail,
			EvaluateOnRecord: cfg.Alerts.EvaluateOnRecord,
			SweepWorkers:     cfg.Alerts.SweepWorkers,
			EvaluateTimeout:  cfg.Alerts.Timeout * 3,
		},
	})
	return app, nil
}
