package enrich

import "testing"

func TestExtractAmountRange(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		text    string
		wantMin *float64
		wantMax *float64
		wantOK  bool
	}{
		{"single figure is a max", "Grants of up to $5,000 for clubs", nil, f(5000), true},
		{"minimum keyword", "A minimum of $2,000 per project", f(2000), nil, true},
		{"at least keyword", "Applicants receive at least $1,500", f(1500), nil, true},
		{"two figures become a range", "Between $5,000 and $25,000 available", f(5000), f(25000), true},
		{"figures out of order", "Up to $25,000, starting from $5,000", f(5000), f(25000), true},
		{"decimal", "Co-funding of $10000.50", nil, f(10000.50), true},
		{"plain numbers ignored", "Round 2 opens in 2026 for 500 clubs", nil, nil, false},
		{"no text", "", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax, ok := extractAmountRange(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !floatPtrEq(gotMin, tt.wantMin) {
				t.Fatalf("min = %v, want %v", fmtPtr(gotMin), fmtPtr(tt.wantMin))
			}
			if !floatPtrEq(gotMax, tt.wantMax) {
				t.Fatalf("max = %v, want %v", fmtPtr(gotMax), fmtPtr(tt.wantMax))
			}
		})
	}
}

func floatPtrEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtPtr(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
