// Package notify delivers finished alert payloads. Delivery is fire-and-report:
// failures are logged and returned, never retried here.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"clementus360/mood-tracker/types"
)

// Notifier is one delivery transport.
type Notifier interface {
	Name() string
	Send(ctx context.Context, payload types.AlertPayload, recipients []string) error
}

// DeliveryError wraps a transport failure.
type DeliveryError struct {
	Notifier string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery via %s failed: %v", e.Notifier, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Dispatcher fans a payload out to every configured notifier. Each notifier
// gets its own timeout.
type Dispatcher struct {
	notifiers []Notifier
	timeout   time.Duration
	logger    logrus.FieldLogger
}

func NewDispatcher(timeout time.Duration, logger logrus.FieldLogger, notifiers ...Notifier) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Dispatcher{notifiers: notifiers, timeout: timeout, logger: logger}
}

// Notifiers returns the names of the configured transports.
func (d *Dispatcher) Notifiers() []string {
	names := make([]string, len(d.notifiers))
	for i, n := range d.notifiers {
		names[i] = n.Name()
	}
	return names
}

// Dispatch reports Delivered when at least one transport accepted the payload.
func (d *Dispatcher) Dispatch(ctx context.Context, payload types.AlertPayload, recipients []string) types.DeliveryResult {
	result := types.DeliveryResult{Recipients: recipients}
	if len(d.notifiers) == 0 {
		d.logger.WithField("employee_id", payload.EmployeeID).Warn("No notifiers configured, alert not delivered")
		return result
	}

	for _, n := range d.notifiers {
		log := d.logger.WithFields(logrus.Fields{
			"notifier":    n.Name(),
			"employee_id": payload.EmployeeID,
			"status":      payload.Status,
			"alert_id":    payload.AlertID,
		})

		if err := d.send(ctx, n, payload, recipients); err != nil {
			derr := &DeliveryError{Notifier: n.Name(), Err: err}
			if result.Failures == nil {
				result.Failures = make(map[string]string)
			}
			result.Failures[n.Name()] = derr.Error()
			log.WithError(err).Error("Failed to deliver alert")
			continue
		}
		result.Delivered = true
		log.Info("Alert delivered")
	}
	return result
}

func (d *Dispatcher) send(ctx context.Context, n Notifier, payload types.AlertPayload, recipients []string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return n.Send(ctx, payload, recipients)
}

// Recipients merges the configured HR and manager addresses with the employee's
// own manager, dropping blanks and duplicates.
func Recipients(addresses ...string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		key := strings.ToLower(a)
		if a == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}
