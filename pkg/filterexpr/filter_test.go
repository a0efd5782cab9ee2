package filterexpr

import (
	"strings"
	"testing"
	"time"
)

var testFields = map[string]ValueKind{
	"subject": KindString,
	"score":   KindNumber,
	"date":    KindTimestamp,
}

type testMsg struct{ filter, orderBy string }

func (m testMsg) GetFilter() string  { return m.filter }
func (m testMsg) GetOrderBy() string { return m.orderBy }

var testOrder = OrderSchema{
	DefaultPrimary:     "date",
	DefaultPrimaryDesc: true,
	FallbackKey:        "subject",
	Fields:             []string{"date", "subject", "score"},
}

func vars(subject string, score float64, date time.Time) map[string]any {
	return map[string]any{"subject": subject, "score": score, "date": date}
}

func TestCompileEmptyMatchesAll(t *testing.T) {
	p, err := Compile("   ", testFields)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil predicate, got %v", p)
	}
	ok, err := p.Match(nil)
	if err != nil || !ok {
		t.Fatalf("nil predicate should match: %v %v", ok, err)
	}
}

func TestPredicateMatch(t *testing.T) {
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		filter string
		vars   map[string]any
		want   bool
	}{
		{`subject == "Math"`, vars("Math", 0, jan), true},
		{`subject == "Math"`, vars("Physics", 0, jan), false},
		{`subject.startsWith("Ph") && score >= 50`, vars("Physics", 75, jan), true},
		{`score >= 50`, vars("Physics", 10, jan), false},
		{`subject in ["Math", "Art"]`, vars("Art", 0, jan), true},
		{`date >= timestamp("2024-01-01T00:00:00Z")`, vars("Art", 0, jan), true},
		{`date < timestamp("2024-01-01T00:00:00Z")`, vars("Art", 0, jan), false},
	}
	for _, tc := range cases {
		p, err := Compile(tc.filter, testFields)
		if err != nil {
			t.Fatalf("%s: compile: %v", tc.filter, err)
		}
		got, err := p.Match(tc.vars)
		if err != nil {
			t.Fatalf("%s: match: %v", tc.filter, err)
		}
		if got != tc.want {
			t.Errorf("%s: got %v want %v", tc.filter, got, tc.want)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	cases := map[string]string{
		`unknown == "x"`: "invalid filter",
		`subject`:        "must evaluate to bool",
		`subject ==`:     "invalid filter",
		`score == "ten"`: "invalid filter",
	}
	for filter, want := range cases {
		_, err := Compile(filter, testFields)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("%s: expected error containing %q, got %v", filter, want, err)
		}
	}
	if _, err := Compile(`x == 1`, nil); err == nil {
		t.Error("expected error for empty schema")
	}
}

func TestMatchValidatesVars(t *testing.T) {
	p, err := Compile(`subject == "Math"`, testFields)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Match(map[string]any{"subject": "Math"}); err == nil {
		t.Fatal("expected missing field error")
	}
	if _, err := p.Match(map[string]any{"subject": 1, "score": 1.0, "date": time.Now()}); err == nil {
		t.Fatal("expected type error")
	}
}

func TestParseOrderBy(t *testing.T) {
	cases := []struct {
		raw  string
		want Order
	}{
		{"", Order{PrimaryKey: "date", PrimaryDesc: true, SecondaryKey: "subject"}},
		{"score desc", Order{PrimaryKey: "score", PrimaryDesc: true, SecondaryKey: "subject"}},
		{"subject", Order{PrimaryKey: "subject", SecondaryKey: "date"}},
		{"subject asc, score DESC", Order{PrimaryKey: "subject", SecondaryKey: "score", SecondaryDesc: true}},
	}
	for _, tc := range cases {
		got, err := ParseOrderBy(tc.raw, testOrder)
		if err != nil {
			t.Fatalf("%q: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Errorf("%q: got %+v want %+v", tc.raw, got, tc.want)
		}
	}

	for _, raw := range []string{"nope", "date sideways", "date, date", "date, subject, score", "date asc extra"} {
		if _, err := ParseOrderBy(raw, testOrder); err == nil {
			t.Errorf("%q: expected error", raw)
		}
	}
}

func TestBind(t *testing.T) {
	q, err := Bind(testMsg{filter: `score >= 1`, orderBy: "score"}, ResourceSchema{Filter: testFields, Order: testOrder})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if q.Predicate.String() != "score >= 1" || q.Order.PrimaryKey != "score" {
		t.Fatalf("unexpected query: %+v", q)
	}
	if _, err := Bind(testMsg{orderBy: "bogus"}, ResourceSchema{Filter: testFields, Order: testOrder}); err == nil {
		t.Fatal("expected order_by error")
	}
}

func TestOrderCompare(t *testing.T) {
	o := Order{PrimaryKey: "a", PrimaryDesc: true, SecondaryKey: "b"}
	if got := o.Compare(func(key string) int {
		if key == "a" {
			return 1
		}
		return 0
	}); got != -1 {
		t.Fatalf("expected descending primary to flip sign, got %d", got)
	}
	if got := o.Compare(func(key string) int {
		if key == "b" {
			return -1
		}
		return 0
	}); got != -1 {
		t.Fatalf("expected secondary tie-break, got %d", got)
	}
}
