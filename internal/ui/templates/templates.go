// Package templates holds the dashboard's HTML views: full pages for first
// render and the fragments patched in over SSE. Views are html/template
// files parsed once at start-up and handed to callers as templ components.
package templates

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"grochain-dashboard/internal/auth"
	"grochain-dashboard/internal/finance"
	"grochain-dashboard/internal/listing"
	"grochain-dashboard/internal/models"
)

//go:embed views/*.html
var files embed.FS

var funcs = template.FuncMap{
	"naira":        Naira,
	"nairaDecimal": NairaDecimal,
	"percent":      percent,
	"ratio":        ratioPercent,
	"quantity":     quantity,
	"date":         date,
	"count":        itoaCount,
	"badgeClass":   badgeClass,
	"pathEscape":   url.PathEscape,
	"productURL":   ProductURL,
	"displayName":  displayName,
	"signals":      signals,
	"listSignals":  NewListSignals,
	"tierLabel":    tierLabel,
	"completable":  completable,
	"join":         strings.Join,
	"list":         func(s ...string) []string { return s },
	"card":         func(label, value, sub string) cardView { return cardView{label, value, sub} },
	"controls": func(endpoint, placeholder string, statuses []string) controlsView {
		return controlsView{endpoint, placeholder, statuses}
	},
	"pager": func(endpoint string, page, totalPages, totalItems int) pagerView {
		return pagerView{Endpoint: endpoint, Page: page, TotalPages: totalPages, TotalItems: totalItems}
	},
}

var views = template.Must(template.New("views").Funcs(funcs).ParseFS(files, "views/*.html"))

// view binds the named template to data.
func view(name string, data any) templ.Component {
	return templ.FromGoHTML(views.Lookup(name), data)
}

type cardView struct {
	Label, Value, Sub string
}

type controlsView struct {
	Endpoint    string
	Placeholder string
	Statuses    []string
}

type pagerView struct {
	Endpoint   string
	Page       int
	TotalPages int
	TotalItems int
}

func (p pagerView) Prev() int { return p.Page - 1 }
func (p pagerView) Next() int { return p.Page + 1 }

// Naira formats an amount as ₦1,234.50.
func Naira(v float64) string {
	return "₦" + groupThousands(decimal.NewFromFloat(v).StringFixed(2))
}

// NairaDecimal is Naira for decimal amounts.
func NairaDecimal(d decimal.Decimal) string {
	return "₦" + groupThousands(d.StringFixed(2))
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		return sign + b.String() + "." + frac
	}
	return sign + b.String()
}

func quantity(q float64) string {
	return groupThousands(decimal.NewFromFloat(q).String())
}

func percent(v float64) string {
	return decimal.NewFromFloat(v*100).StringFixed(1) + "%"
}

var hundred = decimal.NewFromInt(100)

func ratioPercent(d decimal.Decimal) string {
	return d.Mul(hundred).StringFixed(1) + "%"
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2 Jan 2006")
}

func itoaCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// badgeClass maps a status onto a colour class. status is any of the
// models' named string types.
func badgeClass(status any) string {
	switch strings.ToLower(fmt.Sprint(status)) {
	case "active", "approved", "paid", "completed", "delivered", "confirmed":
		return "badge-success"
	case "pending", "processing", "shipped":
		return "badge-warning"
	case "cancelled", "suspended", "failed", "inactive":
		return "badge-danger"
	}
	return "badge-neutral"
}

// signals encodes v for a data-signals attribute.
func signals(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func displayName(u *auth.User) string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return u.ID
}

var tierLabels = map[finance.Tier]string{
	finance.TierExcellent: "Excellent: very likely to be approved",
	finance.TierGood:      "Good: likely to be approved",
	finance.TierFair:      "Fair: may need collateral",
	finance.TierPoor:      "Poor: repayments exceed half of income",
	finance.TierUnknown:   "Enter an amount and your monthly income",
}

func tierLabel(t finance.Tier) string {
	return tierLabels[t]
}

func completable(r models.Referral) bool {
	return r.Status != models.ReferralCompleted && r.Farmer.ID != ""
}

// ListSignals is the signal store of a list page. Rendered echoes the state
// the server last drew so a changed filter can be told from a page turn.
type ListSignals struct {
	listing.State
	Rendered listing.State `json:"rendered"`
}

func NewListSignals(st listing.State) ListSignals {
	return ListSignals{State: st, Rendered: st}
}

// ProductURL is the canonical /marketplace/{id}/{slug} link.
func ProductURL(l models.Listing) string {
	return "/marketplace/" + url.PathEscape(l.ID) + "/" + l.Slug()
}
