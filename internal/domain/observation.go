package domain

import "time"

// ObservationPoint is one raw macro observation in long form.
// Corresponds to the observations table in PostgreSQL.
type ObservationPoint struct {
	Series     string    // series identifier, e.g. "US10Y"
	ObservedAt time.Time // observation date (monthly cadence expected)
	Value      float64   // observed value
}

// FeaturePoint is one derived feature value in long form.
// Corresponds to the feature_rows table in ClickHouse.
type FeaturePoint struct {
	Recipe     string    // recipe that produced the feature
	ObservedAt time.Time // row date the feature is valid as of
	Column     string    // feature column name, e.g. "HY_OAS_Z"
	Value      float64   // feature value (never NaN; undefined rows are pruned)
}
