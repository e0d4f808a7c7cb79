package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/de-scientist/brandson/app/models"
	"github.com/de-scientist/brandson/app/utils/format"
	"github.com/shopspring/decimal"
)

type MailerConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	config MailerConfig
	send   sendMailFunc
}

func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{
		config: cfg,
		send:   smtp.SendMail,
	}
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {
	headers := [][2]string{
		{"From", m.config.From},
		{"To", to},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=\"UTF-8\""},
	}

	var msg strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", h[0], h[1])
	}
	msg.WriteString("\r\n" + htmlBody)

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}
	addr := m.config.Host + ":" + m.config.Port

	if err := m.send(addr, auth, m.config.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

// SendOrderConfirmation emails the order summary to the customer.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, summary models.OrderSummary) error {
	if summary.CustomerInfo.Email == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := BuildOrderConfirmationBody(summary)
	if err != nil {
		return err
	}
	subject := "Your Brandson order " + summary.Reference
	return m.SendHTMLEmail(summary.CustomerInfo.Email, subject, body)
}

var orderConfirmationTmpl = template.Must(template.New("order").Funcs(template.FuncMap{
	"kes":  format.KES,
	"line": func(item models.CartItem) decimal.Decimal { return item.LineTotal() },
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Order {{.Reference}}</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Thank you for your order, {{.CustomerInfo.FirstName}}!</h2>
  <p>Order reference: <strong>{{.Reference}}</strong></p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><th align="left">Item</th><th align="right">Qty</th><th align="right">Total</th></tr>
    {{range .Items}}<tr><td>{{.Product.Name}} ({{.Variant.Name}})</td><td align="right">{{.Quantity}}</td><td align="right">{{kes (line .)}}</td></tr>
    {{end}}
  </table>
  <p>Subtotal: {{kes .Subtotal}}<br>
  VAT (16%): {{kes .Tax}}<br>
  Shipping ({{.ShippingInfo.Name}}): {{kes .Shipping}}<br>
  <strong>Total: {{kes .Total}}</strong></p>
  <p>Estimated delivery: {{.ShippingInfo.EstimatedDays}}</p>
</body>
</html>`))

func BuildOrderConfirmationBody(summary models.OrderSummary) (string, error) {
	var buf bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&buf, summary); err != nil {
		return "", fmt.Errorf("render order confirmation: %w", err)
	}
	return buf.String(), nil
}
