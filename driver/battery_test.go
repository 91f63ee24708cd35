package driver

import "testing"

func TestBatteryNonEmpty(t *testing.T) {
	cases := Battery()
	if len(cases) == 0 {
		t.Fatal("Battery() returned no cases")
	}
	for _, c := range cases {
		if c.N == "" {
			t.Errorf("case %q has an empty N", c.Name)
		}
	}
}
