package templates

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	"strings"
)

// definition couples a subject line with the HTML body for one email kind.
// Subjects and bodies share the same template data.
type definition struct {
	subject string
	body    string
}

var definitions = map[string]definition{
	"verify_email": {
		subject: "Verify your email",
		body: `<html><body>
<p>Hi {{.name}},</p>
<p>Welcome to Scentlog. Please confirm your email address to activate your account:</p>
<p><a href="{{.verify_url}}">Verify my email</a></p>
<p>The link expires in 24 hours. If you did not create an account, you can ignore this message.</p>
</body></html>`,
	},
	"reset_password": {
		subject: "Reset your password",
		body: `<html><body>
<p>Hi {{.name}},</p>
<p>We received a request to reset your password. Follow the link below to choose a new one:</p>
<p><a href="{{.reset_url}}">Reset my password</a></p>
<p>The link expires in one hour. If you did not ask for this, your password is unchanged.</p>
</body></html>`,
	},
	"welcome": {
		subject: "Welcome to Scentlog",
		body: `<html><body>
<p>Hi {{.name}},</p>
<p>Your account is ready. Browse the catalog, review the perfumes you know and find the ones you don't.</p>
</body></html>`,
	},
	"reply_notification": {
		subject: "New reply to your discussion",
		body: `<html><body>
<p>Hi {{.name}},</p>
<p>{{.replier}} replied to your discussion &quot;{{.title}}&quot;.</p>
<p><a href="{{.discussion_url}}">Read the reply</a></p>
</body></html>`,
	},
}

var parsed = func() map[string]*htmpl.Template {
	out := make(map[string]*htmpl.Template, len(definitions))
	for name, def := range definitions {
		out[name] = htmpl.Must(htmpl.New(name).Parse(def.body))
	}
	return out
}()

// Render produces the subject and HTML body for a named template. The text
// fallback is the HTML stripped of tags, good enough for plain-text clients.
func Render(name string, data map[string]any) (subject, html, text string, err error) {
	tpl, ok := parsed[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	html = buf.String()
	return definitions[name].subject, html, stripTags(html), nil
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
