package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"clementus360/mood-tracker/types"
)

// EmailNotifier sends plain-text alerts over SMTP with STARTTLS.
type EmailNotifier struct {
	host     string
	port     int
	sender   string
	password string
}

func NewEmailNotifier(host string, port int, sender, password string) *EmailNotifier {
	return &EmailNotifier{host: host, port: port, sender: sender, password: password}
}

func (n *EmailNotifier) Name() string { return "email" }

func (n *EmailNotifier) Send(ctx context.Context, payload types.AlertPayload, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients")
	}

	addr := net.JoinHostPort(n.host, strconv.Itoa(n.port))
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, n.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: n.host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if n.password != "" {
		if err := client.Auth(smtp.PlainAuth("", n.sender, n.password, n.host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(n.sender); err != nil {
		return err
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(ComposeMessage(n.sender, recipients, payload)); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// ComposeMessage renders the message for an alert. Line endings are
// converted to CRLF by the SMTP data writer.
func ComposeMessage(sender string, recipients []string, payload types.AlertPayload) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\n", sender)
	fmt.Fprintf(&b, "To: %s\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&b, "Subject: Employee Well-being Alert - %s\n", payload.EmployeeName)
	fmt.Fprintf(&b, "Date: %s\n", payload.GeneratedAt.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\n\n")
	b.WriteString(AlertBody(payload))
	return []byte(b.String())
}

// AlertBody is the human-readable text shared by email and webhook summaries.
func AlertBody(payload types.AlertPayload) string {
	var b strings.Builder
	b.WriteString("Employee Well-being Alert\n\n")
	fmt.Fprintf(&b, "Employee: %s\n", payload.EmployeeName)
	fmt.Fprintf(&b, "Team: %s\n", payload.Team)
	fmt.Fprintf(&b, "Status: %s\n\n", strings.ToUpper(string(payload.Status)))
	b.WriteString("Analysis:\n")
	fmt.Fprintf(&b, "- Average Mood Score: %.2f\n", payload.AverageMood)
	fmt.Fprintf(&b, "- Consecutive Low Mood Days: %d\n", payload.ConsecutiveLowDays)
	fmt.Fprintf(&b, "- Alert Message: %s\n\n", payload.Message)
	b.WriteString("Recommended Actions:\n")
	for _, a := range payload.RecommendedActions {
		fmt.Fprintf(&b, "- %s\n", a)
	}
	return b.String()
}
