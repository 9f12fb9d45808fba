package tracking

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/packagetracker/tracker/internal/core/domain"
)

func pkg(name, tn, status, eta string) domain.SavedPackage {
	return domain.SavedPackage{Name: name, TrackingNumber: tn, Status: status, ETA: eta}
}

func TestAnalytics(t *testing.T) {
	pkgs := []domain.SavedPackage{
		pkg("shoes", "TN1", "In Transit", day(-1)),     // delivered by eta
		pkg("book", "TN2", "Arrived at Hub", day(0)),   // delivered by eta
		pkg("lamp", "TN3", "In Transit", day(2)),       // in transit
		pkg("mug", "TN4", "Shipped", day(5)),           // pending
		pkg("desk", "TN5", "Order Created", day(1)),    // pending
		pkg("rug", "TN6", "Arrived at Hub", "unknown"), // fallback delivered
		pkg("pen", "TN7", "In Transit", ""),            // fallback in transit
		pkg("cap", "TN8", "Shipped", "31-12-2024"),     // fallback pending
		pkg("bag", "TN9", "Held at Customs", day(4)),   // none
	}

	got := Analytics(pkgs, today)
	want := Summary{Total: 9, Delivered: 3, InTransit: 2, Pending: 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Analytics mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalytics_Empty(t *testing.T) {
	if got := Analytics(nil, today); got != (Summary{}) {
		t.Errorf("expected zero summary, got %+v", got)
	}
}

func TestSavedLabel(t *testing.T) {
	cases := []struct {
		p    domain.SavedPackage
		want string
	}{
		{pkg("a", "TN1", "In Transit", day(-3)), "Delivered"},
		{pkg("b", "TN2", "In Transit", day(0)), "Delivered"},
		{pkg("c", "TN3", "In Transit", day(1)), "Delivering Soon"},
		{pkg("d", "TN4", "Shipped", day(4)), "Shipped"},
		{pkg("e", "TN5", "Shipped", "bogus"), "Shipped"},
	}
	for _, tc := range cases {
		if got := SavedLabel(tc.p, today); got != tc.want {
			t.Errorf("SavedLabel(%s) = %q, want %q", tc.p.Name, got, tc.want)
		}
	}
}

func TestSearch(t *testing.T) {
	pkgs := []domain.SavedPackage{
		pkg("Birthday Gift", "UK100", "Shipped", day(4)),
		pkg("Laptop", "UK200", "In Transit", day(1)),
		pkg("Books", "US300", "In Transit", day(-1)),
		pkg("Phone case", "UK400", "Shipped", day(-2)),
	}

	names := func(ps []domain.SavedPackage) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}

	cases := []struct {
		name   string
		query  string
		filter Filter
		want   []string
	}{
		{"all", "", FilterAll, []string{"Birthday Gift", "Laptop", "Books", "Phone case"}},
		{"unknown filter behaves as all", "", Filter("weird"), []string{"Birthday Gift", "Laptop", "Books", "Phone case"}},
		{"shipped excludes delivered", "", FilterShipped, []string{"Birthday Gift"}},
		{"in transit excludes delivered", "", FilterInTransit, []string{"Laptop"}},
		{"delivering soon", "", FilterDeliveringSoon, []string{"Laptop"}},
		{"delivered", "", FilterDelivered, []string{"Books", "Phone case"}},
		{"search by name ignores case", "LAP", FilterAll, []string{"Laptop"}},
		{"search by tracking number", "uk", FilterAll, []string{"Birthday Gift", "Laptop", "Phone case"}},
		{"search and filter combine", "uk", FilterDelivered, []string{"Phone case"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := names(Search(pkgs, tc.query, tc.filter, today))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Search mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDueSoon(t *testing.T) {
	pkgs := []domain.SavedPackage{
		pkg("a", "TN1", "Shipped", day(0)),
		pkg("b", "TN2", "Shipped", day(1)),
		pkg("c", "TN3", "Shipped", day(2)),
		pkg("d", "TN4", "Shipped", day(-1)),
		pkg("e", "TN5", "Shipped", "nope"),
	}

	got := DueSoon(pkgs, today)
	if len(got) != 2 || got[0].TrackingNumber != "TN1" || got[1].TrackingNumber != "TN2" {
		t.Errorf("unexpected due soon packages: %+v", got)
	}
}
