package rewards

// Tier grades a finished session by accuracy.
type Tier string

const (
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
	TierStar   Tier = "star"
)

// AllTiers returns the tiers from lowest to highest.
func AllTiers() []Tier {
	return []Tier{TierBronze, TierSilver, TierGold, TierStar}
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierBronze:
		return "Bronze"
	case TierSilver:
		return "Silver"
	case TierGold:
		return "Gold"
	case TierStar:
		return "Superstar"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the tier.
func (t Tier) Icon() string {
	switch t {
	case TierBronze:
		return "🥉"
	case TierSilver:
		return "🥈"
	case TierGold:
		return "🥇"
	case TierStar:
		return "🌟"
	default:
		return "✦"
	}
}

// TierFor returns the tier for correct answers out of total turns.
func TierFor(correct, total int) Tier {
	if total <= 0 {
		return TierBronze
	}
	accuracy := float64(correct) / float64(total)
	switch {
	case accuracy >= 0.90:
		return TierStar
	case accuracy >= 0.75:
		return TierGold
	case accuracy >= 0.50:
		return TierSilver
	default:
		return TierBronze
	}
}
