package insights

import (
	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"

	"insightsuite/domain/tabular"
)

// ReportType selects one of the closed set of report shapes. An unrecognized
// selector routes to ReportGeneric rather than failing.
type ReportType string

const (
	ReportCustomerPurchases ReportType = "customer_purchases"
	ReportCustomers         ReportType = "customers"
	ReportPaymentTickets    ReportType = "payment_tickets"
	ReportSellers           ReportType = "sellers"
	ReportGeneric           ReportType = "generic"
)

// ParseReportType maps a selector string onto the closed variant set.
func ParseReportType(s string) ReportType {
	switch ReportType(s) {
	case ReportCustomerPurchases, ReportCustomers, ReportPaymentTickets, ReportSellers:
		return ReportType(s)
	default:
		return ReportGeneric
	}
}

// Card is a label plus a pre-formatted display value.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ReportResult is the render-ready output of one report computation: ordered
// summary cards, named breakdowns, and the role-to-header resolutions that
// were actually used, so chart consumers need not re-resolve.
type ReportResult struct {
	Type       ReportType           `json:"type"`
	Cards      []Card               `json:"cards"`
	Breakdowns map[string]Breakdown `json:"breakdowns"`
	Columns    map[Role]string      `json:"columns"`
}

// ComputeReport produces a well-formed result for every variant, even when
// every heuristic resolution fails: affected cards degrade to zero values and
// affected breakdowns come back empty.
func ComputeReport(ds *tabular.Dataset, reportType ReportType) ReportResult {
	switch reportType {
	case ReportCustomerPurchases:
		return computeCustomerPurchases(ds)
	case ReportCustomers:
		return computeCustomers(ds)
	case ReportPaymentTickets:
		return computePaymentTickets(ds)
	case ReportSellers:
		return computeSellers(ds)
	default:
		return computeGeneric(ds)
	}
}

func computeCustomerPurchases(ds *tabular.Dataset) ReportResult {
	columns := resolveColumns(ds.Headers, RoleRevenue, RoleTier, RoleCity, RoleMethod)
	total, avg := sumAndAverage(ds.Rows, columns[RoleRevenue])
	tiers := GroupSum(ds.Rows, columns[RoleTier], columns[RoleRevenue])

	return ReportResult{
		Type: ReportCustomerPurchases,
		Cards: []Card{
			{Label: "Total Revenue", Value: formatCurrency(total)},
			{Label: "Purchases", Value: formatCount(ds.RowCount())},
			{Label: "Average Purchase", Value: formatCurrency(avg)},
			{Label: "Unique Tiers", Value: formatCount(len(tiers))},
		},
		Breakdowns: map[string]Breakdown{
			"revenue_by_tier":     tiers,
			"purchases_by_method": GroupCount(ds.Rows, columns[RoleMethod]),
			"purchases_by_city":   GroupCount(ds.Rows, columns[RoleCity]),
		},
		Columns: columns,
	}
}

func computeCustomers(ds *tabular.Dataset) ReportResult {
	columns := resolveColumns(ds.Headers, RoleCity, RoleEmail)
	cities := GroupCount(ds.Rows, columns[RoleCity])
	emails := GroupCount(ds.Rows, columns[RoleEmail])

	return ReportResult{
		Type: ReportCustomers,
		Cards: []Card{
			{Label: "Customers", Value: formatCount(ds.RowCount())},
			{Label: "Unique Cities", Value: formatCount(len(cities))},
			{Label: "Unique Emails", Value: formatCount(len(emails))},
		},
		Breakdowns: map[string]Breakdown{
			"customers_by_city": cities,
		},
		Columns: columns,
	}
}

func computePaymentTickets(ds *tabular.Dataset) ReportResult {
	columns := resolveColumns(ds.Headers, RoleRevenue, RoleMethod, RoleChannel, RoleSeller, RoleCity)
	total, avg := sumAndAverage(ds.Rows, columns[RoleRevenue])
	sellers := GroupSum(ds.Rows, columns[RoleSeller], columns[RoleRevenue])

	return ReportResult{
		Type: ReportPaymentTickets,
		Cards: []Card{
			{Label: "Total Amount", Value: formatCurrency(total)},
			{Label: "Tickets", Value: formatCount(ds.RowCount())},
			{Label: "Average Ticket", Value: formatCurrency(avg)},
			{Label: "Unique Sellers", Value: formatCount(len(sellers))},
		},
		Breakdowns: map[string]Breakdown{
			"amount_by_channel": GroupSum(ds.Rows, columns[RoleChannel], columns[RoleRevenue]),
			"tickets_by_method": GroupCount(ds.Rows, columns[RoleMethod]),
			"amount_by_seller":  sellers,
		},
		Columns: columns,
	}
}

func computeSellers(ds *tabular.Dataset) ReportResult {
	columns := resolveColumns(ds.Headers, RoleRevenue, RoleMethod, RoleCity, RoleBuyerName)
	total, avg := sumAndAverage(ds.Rows, columns[RoleRevenue])
	bySeller := GroupSum(ds.Rows, columns[RoleBuyerName], columns[RoleRevenue])

	return ReportResult{
		Type: ReportSellers,
		Cards: []Card{
			{Label: "Total Sales", Value: formatCurrency(total)},
			{Label: "Transactions", Value: formatCount(ds.RowCount())},
			{Label: "Average Sale", Value: formatCurrency(avg)},
			{Label: "Unique Sellers", Value: formatCount(len(bySeller))},
		},
		Breakdowns: map[string]Breakdown{
			"sales_by_seller":        bySeller,
			"transactions_by_method": GroupCount(ds.Rows, columns[RoleMethod]),
		},
		Columns: columns,
	}
}

func computeGeneric(ds *tabular.Dataset) ReportResult {
	return ReportResult{
		Type: ReportGeneric,
		Cards: []Card{
			{Label: "Rows", Value: formatCount(ds.RowCount())},
		},
		Breakdowns: map[string]Breakdown{},
		Columns:    map[Role]string{},
	}
}

// resolveColumns resolves each role against the headers, keeping only the
// roles that matched. Lookups of unmatched roles return "" which the
// aggregation primitives treat as "not found".
func resolveColumns(headers []string, roles ...Role) map[Role]string {
	columns := make(map[Role]string, len(roles))
	for _, role := range roles {
		if header, ok := ResolveRole(headers, role); ok {
			columns[role] = header
		}
	}
	return columns
}

// sumAndAverage computes the total and the per-row average of the numeric
// coercion of valueColumn. Coercion failures contribute 0, so the average is
// total/rowCount. Both are 0 when the column is unresolved or no rows exist.
func sumAndAverage(rows []tabular.Row, valueColumn string) (float64, float64) {
	if !hasColumn(rows, valueColumn) {
		return 0, 0
	}
	values := make(stats.Float64Data, len(rows))
	for i, row := range rows {
		values[i], _ = row[valueColumn].Float()
	}
	total, err := stats.Sum(values)
	if err != nil {
		return 0, 0
	}
	avg, err := stats.Mean(values)
	if err != nil {
		avg = 0
	}
	return total, avg
}

func formatCurrency(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func formatCount(n int) string {
	return humanize.Comma(int64(n))
}
