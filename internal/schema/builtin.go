package schema

// Labels offered by the categorical fields.
var (
	TrendDirections = []string{"Neutral", "Bullish", "Bearish"}
	VolumeProfiles  = []string{"Flat", "U-Shaped", "Front-Loaded", "Back-Loaded"}
)

// PriceFields declares the price process parameters.
func PriceFields() []Field {
	return []Field{
		Continuous("initial_price", "Initial Price", 0.01, 1_000_000, 100, 2),
		Continuous("volatility", "Volatility (%)", 0.01, 500, 20, 2),
		Continuous("drift", "Drift (%)", -100, 100, 0, 2),
		Continuous("mean_reversion", "Mean Reversion", 0, 1, 0, 3),
		Continuous("gap_probability", "Gap Probability (%)", 0, 100, 1, 2),
		Continuous("gap_size", "Gap Size (%)", 0, 50, 2, 2),
		Categorical("trend_direction", "Trend Direction", TrendDirections, "Neutral"),
	}
}

// VolumeFields declares the volume process parameters.
func VolumeFields() []Field {
	return []Field{
		Integer("base_volume", "Base Volume", 100, 100_000_000, 1_000_000),
		Continuous("volume_volatility", "Volume Volatility (%)", 0, 500, 30, 2),
		Continuous("volume_trend", "Volume Trend (%)", -100, 100, 0, 2),
		Continuous("spike_probability", "Spike Probability (%)", 0, 100, 2, 2),
		Continuous("spike_multiplier", "Spike Multiplier", 1, 50, 3, 2),
		Categorical("volume_profile", "Volume Profile", VolumeProfiles, "Flat"),
	}
}

// PriceGroup returns the built-in Price group.
func PriceGroup() *Group {
	return mustGroup(GroupPrice, PriceFields())
}

// VolumeGroup returns the built-in Volume group.
func VolumeGroup() *Group {
	return mustGroup(GroupVolume, VolumeFields())
}

// Builtin returns the built-in groups in display order.
func Builtin() []*Group {
	return []*Group{PriceGroup(), VolumeGroup()}
}

// mustGroup panics because a broken built-in schema is a programming error.
func mustGroup(name GroupName, fields []Field) *Group {
	g, err := NewGroup(name, fields...)
	if err != nil {
		panic(err)
	}

	return g
}
