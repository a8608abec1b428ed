package helper

import "testing"

func strp(s string) *string { return &s }

func TestFloatOrNil(t *testing.T) {
	cases := []struct {
		name string
		in   *string
		want *float64
	}{
		{"nil", nil, nil},
		{"empty", strp(""), nil},
		{"spaces", strp("   "), nil},
		{"text", strp("abc"), nil},
		{"nan", strp("NaN"), nil},
		{"inf", strp("Inf"), nil},
		{"int", strp("7"), fp(7)},
		{"float", strp("8.25"), fp(8.25)},
		{"padded", strp(" 55 "), fp(55)},
		{"negative", strp("-1.5"), fp(-1.5)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FloatOrNil(tc.in)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("FloatOrNil(%v) nil-ness = %v, want %v", tc.in, got == nil, tc.want == nil)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("FloatOrNil = %v, want %v", *got, *tc.want)
			}
		})
	}
}

func TestIntOrNil(t *testing.T) {
	cases := []struct {
		name string
		in   *string
		want *int
	}{
		{"nil", nil, nil},
		{"empty", strp(""), nil},
		{"text", strp("x"), nil},
		{"int", strp("42"), ip(42)},
		{"integral float", strp("12.0"), ip(12)},
		{"fractional", strp("12.5"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IntOrNil(tc.in)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("IntOrNil(%v) nil-ness = %v, want %v", tc.in, got == nil, tc.want == nil)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("IntOrNil = %v, want %v", *got, *tc.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(7.236666); got != 7.24 {
		t.Fatalf("Round2 = %v, want 7.24", got)
	}
	if got := Round2(55); got != 55 {
		t.Fatalf("Round2 = %v, want 55", got)
	}
}

func fp(f float64) *float64 { return &f }
func ip(n int) *int         { return &n }
