package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"grochain-dashboard/internal/auth"
	"grochain-dashboard/internal/finance"
	"grochain-dashboard/internal/models"
	"grochain-dashboard/internal/services"
)

type navItem struct {
	Href, Label string
}

var nav = []navItem{
	{"/", "Overview"},
	{"/commissions", "Commissions"},
	{"/farmers", "Farmers"},
	{"/referrals", "Referrals"},
	{"/marketplace", "Marketplace"},
	{"/orders", "Orders"},
	{"/loans", "Loans"},
	{"/credit-score", "Credit score"},
}

type layoutView struct {
	Title  string
	Active string
	User   *auth.User
	Nav    []navItem
	Body   template.HTML
}

// Layout wraps content in the dashboard chrome. user may be nil.
func Layout(title, active string, user *auth.User, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := templ.ToGoHTML(ctx, content)
		if err != nil {
			return err
		}
		return views.ExecuteTemplate(w, "layout", layoutView{
			Title:  title,
			Active: active,
			User:   user,
			Nav:    nav,
			Body:   body,
		})
	})
}

// DemoNotice is shown above any list built from canned data.
func DemoNotice(demo bool) templ.Component {
	return view("demo-notice", demo)
}

// ErrorBanner replaces the element with id when a fragment could not be built.
func ErrorBanner(id, message string) templ.Component {
	return view("error-banner", struct{ ID, Message string }{id, message})
}

// SignInRequired is rendered in place of pages that need a user.
func SignInRequired() templ.Component {
	return view("sign-in-required", nil)
}

// ErrorPage is a whole page for errors on first render.
func ErrorPage(status int, message string) templ.Component {
	return view("error-page", struct {
		Status  int
		Message string
	}{status, message})
}

// Pager renders prev/next controls that set the page signal and re-fetch
// endpoint over SSE.
func Pager(endpoint string, page, totalPages, totalItems int) templ.Component {
	return view("pager", pagerView{Endpoint: endpoint, Page: page, TotalPages: totalPages, TotalItems: totalItems})
}

func OverviewPage(s *services.OverviewSummary) templ.Component {
	return view("overview-page", s)
}

func CommissionsPage(d *services.CommissionDashboard) templ.Component {
	return view("commissions-page", d)
}

// CommissionSummary is patched alongside the table after a payout.
func CommissionSummary(d *services.CommissionDashboard) templ.Component {
	return view("commission-summary", d)
}

func CommissionsTable(d *services.CommissionDashboard) templ.Component {
	return view("commissions-table", d)
}

type farmersView struct {
	*services.FarmerDirectory
	Active, Inactive, Suspended int
}

func FarmersPage(d *services.FarmerDirectory) templ.Component {
	return view("farmers-page", farmersView{
		FarmerDirectory: d,
		Active:          d.StatusCounts[models.FarmerActive],
		Inactive:        d.StatusCounts[models.FarmerInactive],
		Suspended:       d.StatusCounts[models.FarmerSuspended],
	})
}

func FarmersTable(d *services.FarmerDirectory) templ.Component {
	return view("farmers-table", d)
}

func ReferralsPage(d *services.ReferralDashboard) templ.Component {
	return view("referrals-page", d)
}

func ReferralSummary(d *services.ReferralDashboard) templ.Component {
	return view("referral-summary", d)
}

func ReferralsTable(d *services.ReferralDashboard) templ.Component {
	return view("referrals-table", d)
}

func OrdersPage(d *services.OrderHistory) templ.Component {
	return view("orders-page", d)
}

func OrdersTable(d *services.OrderHistory) templ.Component {
	return view("orders-table", d)
}

// MarketplaceSignals adds the category filter to the list signals.
type MarketplaceSignals struct {
	ListSignals
	Category string `json:"category"`
}

type marketplaceView struct {
	*services.MarketplacePage
	Signals MarketplaceSignals
}

func MarketplacePage(m *services.MarketplacePage) templ.Component {
	return view("marketplace-page", marketplaceView{
		MarketplacePage: m,
		Signals:         MarketplaceSignals{ListSignals: NewListSignals(m.State), Category: m.Category},
	})
}

func ListingsGrid(m *services.MarketplacePage) templ.Component {
	return view("listings-grid", m)
}

// Suggestions is the dropdown under the marketplace search box.
func Suggestions(items []models.SearchSuggestion) templ.Component {
	return view("suggestions", items)
}

func ProductPage(d *services.ProductDetail) templ.Component {
	return view("product-page", d)
}

// LoanSignals backs the loan application form and the calculator.
type LoanSignals struct {
	Amount        float64 `json:"amount"`
	Term          int     `json:"term"`
	MonthlyIncome float64 `json:"monthlyIncome"`
	ExistingLoans float64 `json:"existingLoans"`
	Purpose       string  `json:"purpose"`
	Collateral    string  `json:"collateral"`
	CropType      string  `json:"cropType"`
	FarmSize      float64 `json:"farmSize"`
}

func LoansPage(sig LoanSignals, est finance.Estimate) templ.Component {
	return view("loans-page", struct {
		Signals  LoanSignals
		Estimate finance.Estimate
	}{sig, est})
}

// LoanQuote is the affordability panel, patched on every input.
func LoanQuote(est finance.Estimate) templ.Component {
	return view("loan-quote", est)
}

// LoanFormErrors lists field messages from a rejected application, ordered
// by field name.
func LoanFormErrors(fields map[string]string) templ.Component {
	return view("loan-errors", fields)
}

// LoanResult confirms a submitted application. nil renders the empty slot.
func LoanResult(res *models.LoanApplicationResult) templ.Component {
	return view("loan-result", res)
}

func CreditScorePage(r *services.CreditReport) templ.Component {
	return view("credit-score-page", r)
}

func HarvestVerifyPage(c *services.HarvestCheck) templ.Component {
	return view("harvest-verify-page", c)
}
