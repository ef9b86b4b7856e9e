package xeninfo

import "testing"

func TestConversions(t *testing.T) {
	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"mph to km/h", MilesToKilometres(10), 16},
		{"fahrenheit to celsius", FahrenheitToCelsius(98.6), 37},
		{"freezing", FahrenheitToCelsius(32), 0},
		{"inHg to hPa", InHgToHPa(29.92), 1013},
		{"half rounds up", Round(2.5), 3},
		{"negative half rounds toward zero", Round(-2.5), -2},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, tc.got)
		}
	}
}

func TestMetricUnitFallsBackToFlag(t *testing.T) {
	if !metricUnit("", "km/h", true) {
		t.Fatalf("expected empty unit to follow the metric flag")
	}
	if metricUnit("mph", "km/h", true) {
		t.Fatalf("expected explicit unit to win over the flag")
	}
	if metricUnit("", "C", false) {
		t.Fatalf("expected empty unit with imperial flag to be imperial")
	}
}
