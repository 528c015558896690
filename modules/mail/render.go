package mail

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/example/pastelaria-api/domain/product"
	"github.com/example/pastelaria-api/events"
)

const confirmationBody = `Hello {{.Customer.Name}},

Your order #{{.OrderNumber}} has been received.

Customer
  Name: {{.Customer.Name}}
  Email: {{.Customer.Email}}
  Phone: {{.Customer.Phone}}
  Address: {{.Customer.Address}}
  Complement: {{.Customer.Complement}}
  Neighborhood: {{.Customer.Neighborhood}}
  Zipcode: {{.Customer.Zipcode}}
  Date of birth: {{.Customer.DateOfBirth}}

Items
{{- range .Items}}

  Product: {{.ProductName}}
  Quantity: {{.Quantity}}
  Unit price: {{money .UnitPriceCents}}
  Subtotal: {{money .SubtotalCents}}
{{- end}}

Total: {{money .TotalCents}}

Thank you for your preference!
{{.AppName}}
`

var confirmationTmpl = template.Must(template.New("order-confirmation").
	Funcs(template.FuncMap{"money": FormatMoney}).
	Parse(confirmationBody))

type confirmationData struct {
	events.OrderCreatedEvent
	AppName string
}

// Subject returns the confirmation subject for order number n.
func Subject(n string) string {
	return "Order confirmation - Order #" + n
}

// RenderConfirmation renders the order confirmation body.
func RenderConfirmation(e events.OrderCreatedEvent, appName string) (string, error) {
	var b strings.Builder
	if err := confirmationTmpl.Execute(&b, confirmationData{OrderCreatedEvent: e, AppName: appName}); err != nil {
		return "", fmt.Errorf("failed to render order confirmation: %w", err)
	}
	return b.String(), nil
}

// FormatMoney formats cents as R$1.234,56.
func FormatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	units, frac, _ := strings.Cut(product.Cents(cents).String(), ".")

	var grouped strings.Builder
	for i, r := range units {
		if i > 0 && (len(units)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}
	return sign + "R$" + grouped.String() + "," + frac
}
