package difficulty

import (
	"math/rand/v2"
	"testing"
)

func TestTierFor_Thresholds(t *testing.T) {
	tests := []struct {
		level int
		want  Tier
	}{
		{-3, TierEasy},
		{0, TierEasy},
		{1, TierEasy},
		{5, TierEasy},
		{6, TierMedium},
		{10, TierMedium},
		{11, TierIntermediate},
		{12, TierIntermediate},
		{15, TierIntermediate},
		{16, TierDifficult},
		{20, TierDifficult},
		{21, TierExtreme},
		{100, TierExtreme},
	}

	for _, tt := range tests {
		if got := TierFor(tt.level); got != tt.want {
			t.Errorf("TierFor(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestResolve_AllLevelsMapToOneTier(t *testing.T) {
	for level := 1; level <= 100; level++ {
		p := Resolve(level)
		var want Tier
		switch {
		case level <= 5:
			want = TierEasy
		case level <= 10:
			want = TierMedium
		case level <= 15:
			want = TierIntermediate
		case level <= 20:
			want = TierDifficult
		default:
			want = TierExtreme
		}
		if p.Tier != want {
			t.Errorf("Resolve(%d).Tier = %v, want %v", level, p.Tier, want)
		}
		if !p.Tier.Valid() {
			t.Errorf("Resolve(%d) returned invalid tier %d", level, p.Tier)
		}
		if p.Level != level {
			t.Errorf("Resolve(%d).Level = %d", level, p.Level)
		}
		if len(p.Operators) == 0 {
			t.Errorf("Resolve(%d) has no operators", level)
		}
	}
}

func TestResolve_ClampsLevel(t *testing.T) {
	p := Resolve(0)
	if p.Level != 1 || p.Tier != TierEasy {
		t.Errorf("Resolve(0) = level %d tier %v, want level 1 easy", p.Level, p.Tier)
	}
}

func TestResolve_RoundDurations(t *testing.T) {
	for _, tier := range AllTiers() {
		p := ForTier(tier, 1)
		if p.RoundSecs(false) != 30 {
			t.Errorf("%v math round = %d, want 30", tier, p.RoundSecs(false))
		}
		if p.RoundSecs(true) != 45 {
			t.Errorf("%v word round = %d, want 45", tier, p.RoundSecs(true))
		}
	}
}

func TestResolve_DivisionOnlyFromIntermediate(t *testing.T) {
	if Resolve(3).HasOperator(OpDiv) {
		t.Error("easy tier should not divide")
	}
	if Resolve(8).HasOperator(OpDiv) {
		t.Error("medium tier should not divide")
	}
	if !Resolve(12).HasOperator(OpDiv) {
		t.Error("intermediate tier should divide")
	}
}

func TestResolve_OperatorsNotShared(t *testing.T) {
	a := Resolve(12)
	a.Operators[0] = OpDiv
	b := Resolve(12)
	if b.Operators[0] != OpAdd {
		t.Error("mutating resolved params leaked into the tier table")
	}
}

func TestRange_Pick(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	r := Range{3, 7}
	seen := make(map[int]bool)
	for range 500 {
		n := r.Pick(rng)
		if !r.Contains(n) {
			t.Fatalf("Pick() = %d, outside %v", n, r)
		}
		seen[n] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected all 5 values to appear, saw %d", len(seen))
	}

	if got := (Range{4, 4}).Pick(rng); got != 4 {
		t.Errorf("degenerate range Pick() = %d, want 4", got)
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range AllTiers() {
		got, err := ParseTier(tier.DisplayName())
		if err != nil {
			t.Fatalf("ParseTier(%q): %v", tier.DisplayName(), err)
		}
		if got != tier {
			t.Errorf("ParseTier(%q) = %v, want %v", tier.DisplayName(), got, tier)
		}
	}
	if _, err := ParseTier("legendary"); err == nil {
		t.Error("expected error for unknown tier")
	}
}

func TestOperatorApply(t *testing.T) {
	tests := []struct {
		op   Operator
		a, b int
		want int
	}{
		{OpAdd, 4, 9, 13},
		{OpSub, 9, 4, 5},
		{OpMul, 6, 7, 42},
		{OpDiv, 35, 5, 7},
		{OpDiv, 3, 0, 0},
	}
	for _, tt := range tests {
		if got := tt.op.Apply(tt.a, tt.b); got != tt.want {
			t.Errorf("%d %s %d = %d, want %d", tt.a, tt.op, tt.b, got, tt.want)
		}
	}
}
