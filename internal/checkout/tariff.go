package checkout

// Tier is one of the five fixed-price delivery speed options. Cost is a
// flat IDR amount per tier, no distance or weight computation.
type Tier string

const (
	TierCargo   Tier = "Cargo"
	TierRegular Tier = "Regular"
	TierNextDay Tier = "Next Day"
	TierSameDay Tier = "Same Day"
	TierInstant Tier = "Instant"
)

// DefaultTier is preselected when the shopper enters checkout.
const DefaultTier = TierRegular

var tariffs = map[Tier]int64{
	TierCargo:   5000,
	TierRegular: 7000,
	TierNextDay: 10000,
	TierSameDay: 14000,
	TierInstant: 20000,
}

func (t Tier) Valid() bool {
	_, ok := tariffs[t]
	return ok
}

// Cost returns the flat delivery cost for the tier. Unknown tiers fall
// back to the Regular tariff.
func (t Tier) Cost() int64 {
	if c, ok := tariffs[t]; ok {
		return c
	}
	return tariffs[TierRegular]
}

// Tiers lists the tiers in the order they are offered.
func Tiers() []Tier {
	return []Tier{TierCargo, TierRegular, TierNextDay, TierSameDay, TierInstant}
}
