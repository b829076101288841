package insights

import (
	"testing"

	"insightsuite/domain/tabular"
)

func makeDataset(headers []string, records [][]string) *tabular.Dataset {
	return tabular.NewDataset("fixture.csv", headers, makeRows(headers, records))
}

func cardValue(t *testing.T, result ReportResult, label string) string {
	t.Helper()
	for _, card := range result.Cards {
		if card.Label == label {
			return card.Value
		}
	}
	t.Fatalf("card %q not found in %+v", label, result.Cards)
	return ""
}

func TestCustomerPurchasesReport(t *testing.T) {
	ds := makeDataset(
		[]string{"Customer Name", "Total Amount", "Tier", "Customer City", "Payment Method"},
		[][]string{
			{"Alice", "1200.50", "Gold", "Lisbon", "card"},
			{"Bob", "99.50", "Silver", "Porto", "cash"},
			{"Carol", "700", "Gold", "Lisbon", "card"},
		},
	)
	result := ComputeReport(ds, ReportCustomerPurchases)

	if got := cardValue(t, result, "Total Revenue"); got != "$2,000.00" {
		t.Errorf("Total Revenue = %q", got)
	}
	if got := cardValue(t, result, "Purchases"); got != "3" {
		t.Errorf("Purchases = %q", got)
	}
	if got := cardValue(t, result, "Average Purchase"); got != "$666.67" {
		t.Errorf("Average Purchase = %q", got)
	}
	if got := cardValue(t, result, "Unique Tiers"); got != "2" {
		t.Errorf("Unique Tiers = %q", got)
	}

	tiers := result.Breakdowns["revenue_by_tier"]
	if tiers["Gold"] != 1900.50 || tiers["Silver"] != 99.50 {
		t.Errorf("unexpected revenue_by_tier: %v", tiers)
	}
	if methods := result.Breakdowns["purchases_by_method"]; methods["card"] != 2 || methods["cash"] != 1 {
		t.Errorf("unexpected purchases_by_method: %v", methods)
	}

	if result.Columns[RoleRevenue] != "Total Amount" {
		t.Errorf("revenue resolved to %q", result.Columns[RoleRevenue])
	}
	if result.Columns[RoleCity] != "Customer City" {
		t.Errorf("city resolved to %q", result.Columns[RoleCity])
	}
}

// TestCustomerPurchasesWithoutTierColumn tests the degraded path: no header
// contains tier-like text, the tier breakdown is empty and the Unique Tiers
// card reads 0, without an error
func TestCustomerPurchasesWithoutTierColumn(t *testing.T) {
	ds := makeDataset(
		[]string{"Name", "Revenue", "City", "Payment Method"},
		[][]string{
			{"Alice", "10", "Lisbon", "card"},
			{"Bob", "20", "Porto", "cash"},
		},
	)
	result := ComputeReport(ds, ReportCustomerPurchases)

	if got := cardValue(t, result, "Unique Tiers"); got != "0" {
		t.Errorf("Unique Tiers = %q, expected 0", got)
	}
	if len(result.Breakdowns["revenue_by_tier"]) != 0 {
		t.Errorf("expected empty tier breakdown, got %v", result.Breakdowns["revenue_by_tier"])
	}
	if _, resolved := result.Columns[RoleTier]; resolved {
		t.Error("tier must not appear among resolved columns")
	}
	if got := cardValue(t, result, "Total Revenue"); got != "$30.00" {
		t.Errorf("unrelated cards must still compute, Total Revenue = %q", got)
	}
}

func TestCustomersReport(t *testing.T) {
	ds := makeDataset(
		[]string{"Customer City", "Email"},
		[][]string{
			{"Lisbon", "a@x.com"},
			{"Porto", "b@x.com"},
			{"Lisbon", "a@x.com"},
		},
	)
	result := ComputeReport(ds, ReportCustomers)

	if got := cardValue(t, result, "Customers"); got != "3" {
		t.Errorf("Customers = %q", got)
	}
	if got := cardValue(t, result, "Unique Cities"); got != "2" {
		t.Errorf("Unique Cities = %q", got)
	}
	if got := cardValue(t, result, "Unique Emails"); got != "2" {
		t.Errorf("Unique Emails = %q", got)
	}
	if cities := result.Breakdowns["customers_by_city"]; cities["Lisbon"] != 2 {
		t.Errorf("unexpected customers_by_city: %v", cities)
	}
}

func TestPaymentTicketsReport(t *testing.T) {
	ds := makeDataset(
		[]string{"Amount", "Payment Method", "Channel", "Seller", "City"},
		[][]string{
			{"100", "card", "web", "Ana", "Lisbon"},
			{"50", "cash", "store", "Rui", "Porto"},
			{"25", "card", "web", "Ana", "Lisbon"},
		},
	)
	result := ComputeReport(ds, ReportPaymentTickets)

	if got := cardValue(t, result, "Total Amount"); got != "$175.00" {
		t.Errorf("Total Amount = %q", got)
	}
	if got := cardValue(t, result, "Unique Sellers"); got != "2" {
		t.Errorf("Unique Sellers = %q", got)
	}
	if channels := result.Breakdowns["amount_by_channel"]; channels["web"] != 125 || channels["store"] != 50 {
		t.Errorf("unexpected amount_by_channel: %v", channels)
	}
	if sellers := result.Breakdowns["amount_by_seller"]; sellers["Ana"] != 125 {
		t.Errorf("unexpected amount_by_seller: %v", sellers)
	}
}

func TestSellersReport(t *testing.T) {
	ds := makeDataset(
		[]string{"Seller Name", "Sales", "Payment Method", "City"},
		[][]string{
			{"Ana", "300", "card", "Lisbon"},
			{"Rui", "200", "cash", "Porto"},
		},
	)
	result := ComputeReport(ds, ReportSellers)

	if got := cardValue(t, result, "Total Sales"); got != "$500.00" {
		t.Errorf("Total Sales = %q", got)
	}
	if got := cardValue(t, result, "Average Sale"); got != "$250.00" {
		t.Errorf("Average Sale = %q", got)
	}
	if bySeller := result.Breakdowns["sales_by_seller"]; bySeller["Ana"] != 300 || bySeller["Rui"] != 200 {
		t.Errorf("unexpected sales_by_seller: %v", bySeller)
	}
}

// TestGenericReport tests the fallback variant: one row-count card, no
// breakdowns
func TestGenericReport(t *testing.T) {
	ds := makeDataset([]string{"Whatever"}, [][]string{{"a"}, {"b"}})

	for _, selector := range []string{"", "unknown_report", "generic"} {
		result := ComputeReport(ds, ParseReportType(selector))
		if result.Type != ReportGeneric {
			t.Errorf("selector %q: expected generic variant, got %s", selector, result.Type)
		}
		if len(result.Cards) != 1 || result.Cards[0].Label != "Rows" || result.Cards[0].Value != "2" {
			t.Errorf("selector %q: unexpected cards %+v", selector, result.Cards)
		}
		if len(result.Breakdowns) != 0 {
			t.Errorf("selector %q: generic variant must have no breakdowns", selector)
		}
	}
}

// TestReportTotality tests that every variant yields a well-formed result
// over a dataset where no heuristic resolution can succeed
func TestReportTotality(t *testing.T) {
	ds := makeDataset([]string{"xxx", "yyy"}, [][]string{{"1", "2"}})

	variants := []ReportType{
		ReportCustomerPurchases, ReportCustomers, ReportPaymentTickets, ReportSellers, ReportGeneric,
	}
	for _, variant := range variants {
		result := ComputeReport(ds, variant)
		if result.Type != variant {
			t.Errorf("variant %s: wrong type %s", variant, result.Type)
		}
		if len(result.Cards) == 0 {
			t.Errorf("variant %s: expected at least one card", variant)
		}
		for _, card := range result.Cards {
			if card.Value == "" {
				t.Errorf("variant %s: card %q has empty value", variant, card.Label)
			}
		}
	}
}

func TestParseReportType(t *testing.T) {
	tests := []struct {
		input    string
		expected ReportType
	}{
		{"customer_purchases", ReportCustomerPurchases},
		{"customers", ReportCustomers},
		{"payment_tickets", ReportPaymentTickets},
		{"sellers", ReportSellers},
		{"", ReportGeneric},
		{"nonsense", ReportGeneric},
	}
	for _, test := range tests {
		if got := ParseReportType(test.input); got != test.expected {
			t.Errorf("ParseReportType(%q) = %s, expected %s", test.input, got, test.expected)
		}
	}
}

func TestCurrencyFormatting(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{1000000, "$1,000,000.00"},
	}
	for _, test := range tests {
		if got := formatCurrency(test.value); got != test.expected {
			t.Errorf("formatCurrency(%v) = %q, expected %q", test.value, got, test.expected)
		}
	}
	if got := formatCount(1234567); got != "1,234,567" {
		t.Errorf("formatCount = %q", got)
	}
}
