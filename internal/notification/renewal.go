// Package notification renders transactional billing emails.
package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"
)

// RenewalData feeds the renewal confirmation templates.
type RenewalData struct {
	ItemName  string // plan tier or add-on type
	Amount    string
	Currency  string
	ValidTill time.Time
}

const renewalSubject = "Subscription renewed / Abonnement renouvelé"

var renewalHTML = htmltemplate.Must(htmltemplate.New("renewal.html").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Subscription renewed</title></head>
<body style="font-family: Arial, sans-serif;">
	<h2>Your subscription has been renewed</h2>
	<p>We received your payment of <strong>{{.Amount}} {{.Currency}}</strong> for <strong>{{.ItemName}}</strong>.</p>
	<p>Your access is now valid until <strong>{{.ValidTill.Format "January 2, 2006"}}</strong>.</p>
	<hr>
	<h2>Votre abonnement a été renouvelé</h2>
	<p>Nous avons bien reçu votre paiement de <strong>{{.Amount}} {{.Currency}}</strong> pour <strong>{{.ItemName}}</strong>.</p>
	<p>Votre accès est désormais valable jusqu'au <strong>{{.ValidTill.Format "02/01/2006"}}</strong>.</p>
</body>
</html>
`))

var renewalText = texttemplate.Must(texttemplate.New("renewal.txt").Parse(`Your subscription has been renewed.
Payment: {{.Amount}} {{.Currency}} for {{.ItemName}}.
Valid until: {{.ValidTill.Format "January 2, 2006"}}.

Votre abonnement a été renouvelé.
Paiement : {{.Amount}} {{.Currency}} pour {{.ItemName}}.
Valable jusqu'au : {{.ValidTill.Format "02/01/2006"}}.
`))

// RenderRenewal returns the subject and both bodies of the bilingual
// renewal confirmation.
func RenderRenewal(data RenewalData) (subject, html, text string, err error) {
	var htmlBuf, textBuf bytes.Buffer
	if err := renewalHTML.Execute(&htmlBuf, data); err != nil {
		return "", "", "", fmt.Errorf("render renewal html: %w", err)
	}
	if err := renewalText.Execute(&textBuf, data); err != nil {
		return "", "", "", fmt.Errorf("render renewal text: %w", err)
	}
	return renewalSubject, htmlBuf.String(), textBuf.String(), nil
}
