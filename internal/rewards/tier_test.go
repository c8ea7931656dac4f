package rewards

import "testing"

func TestTierFor(t *testing.T) {
	tests := []struct {
		correct, total int
		want           Tier
	}{
		{0, 0, TierBronze},
		{0, 5, TierBronze},
		{2, 5, TierBronze},
		{1, 2, TierSilver},
		{7, 10, TierSilver},
		{3, 4, TierGold},
		{8, 10, TierGold},
		{9, 10, TierStar},
		{5, 5, TierStar},
	}

	for _, tt := range tests {
		got := TierFor(tt.correct, tt.total)
		if got != tt.want {
			t.Errorf("TierFor(%d, %d) = %q, want %q", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestTierDisplay(t *testing.T) {
	for _, tier := range AllTiers() {
		if tier.DisplayName() == string(tier) {
			t.Errorf("tier %q has no display name", tier)
		}
		if tier.Icon() == "✦" {
			t.Errorf("tier %q has no icon", tier)
		}
	}
}
