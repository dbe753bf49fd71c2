package pan

import "testing"

func approxEqual(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestHardLeftAndRight(t *testing.T) {
	l, r := Gains(0, ConstantPower)
	if !approxEqual(l, 1, 1e-9) || !approxEqual(r, 0, 1e-9) {
		t.Fatalf("pan=0 should be hard left, got L=%g R=%g", l, r)
	}
	l, r = Gains(1, ConstantPower)
	if !approxEqual(l, 0, 1e-9) || !approxEqual(r, 1, 1e-9) {
		t.Fatalf("pan=1 should be hard right, got L=%g R=%g", l, r)
	}
}

func TestConstantPowerHoldsEverywhere(t *testing.T) {
	for _, p := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		l, r := Gains(p, ConstantPower)
		if !approxEqual(l*l+r*r, 1, 1e-9) {
			t.Fatalf("pan=%g: L^2+R^2 should be 1, got %g", p, l*l+r*r)
		}
	}
}

func TestConstantPowerCenterIsEqual(t *testing.T) {
	l, r := Gains(0.5, ConstantPower)
	if !approxEqual(l, r, 1e-9) {
		t.Fatalf("center pan should be equal L/R, got L=%g R=%g", l, r)
	}
}

func TestLinearCenterIsHalf(t *testing.T) {
	l, r := Gains(0.5, Linear)
	if !approxEqual(l, 0.5, 1e-9) || !approxEqual(r, 0.5, 1e-9) {
		t.Fatalf("linear law center should be 0.5/0.5, got L=%g R=%g", l, r)
	}
}

func TestMinusFourPointFiveDBIsQuieterThanConstantPowerAtCenter(t *testing.T) {
	lcp, _ := Gains(0.5, ConstantPower)
	l45, _ := Gains(0.5, MinusFourPointFiveDB)
	if l45 >= lcp {
		t.Fatalf("-4.5dB law should attenuate center relative to constant power: got %g vs %g", l45, lcp)
	}
}

func TestParseLaw(t *testing.T) {
	if ParseLaw("linear") != Linear {
		t.Fatal("linear should parse to Linear")
	}
	if ParseLaw("-4.5dB") != MinusFourPointFiveDB {
		t.Fatal("-4.5dB should parse to MinusFourPointFiveDB")
	}
	if ParseLaw("constant_power") != ConstantPower {
		t.Fatal("constant_power should parse to ConstantPower")
	}
	if ParseLaw("unknown") != ConstantPower {
		t.Fatal("unknown law should default to ConstantPower")
	}
}
