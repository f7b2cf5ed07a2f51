// Package config holds the immutable preprocessing configuration.
package config

import "time"

// Config parameterizes cleaning and the feature recipes. It is a value
// object: construct it once (usually from Default) and pass it by value.
// Nothing in the pipeline mutates it, so two configs never interfere.
type Config struct {
	// Required columns in the raw input, after header renaming.
	RequiredColumns []string

	// Raw header -> canonical column name, applied at ingestion time.
	ColumnRename map[string]string

	// Cleaning parameters.
	FfillMaxGap    int  // forward-fill at most this many consecutive gaps
	DropInitialNA  bool // drop leading rows with incomplete required columns
	AsOf           *time.Time

	// Yield-curve slope (prepended to every recipe).
	SlopeLongColumn  string
	SlopeShortColumn string
	SlopeColumn      string

	// Rolling z-score parameters.
	ZScoreWindow     int
	ZScoreMinPeriods int
	ZScoreColumns    []string

	// Diff/momentum parameters.
	DiffColumns []string
	DiffPeriods []int

	// Columns to negate after standardization (higher = worse indicators).
	SignFlipColumns []string

	// Equity drawdown parameters (z_plus_momentum and changes_only recipes).
	ReturnColumn    string // 1-month log return series
	CumReturnColumn string // synthesized cumulative log return
	DrawdownColumn  string
	DrawdownWindow  int
}

// Default returns the standard monthly macro configuration.
func Default() Config {
	return Config{
		RequiredColumns: []string{
			"US10Y", "US2Y", "HY_OAS", "IG_OAS", "INFLATION_EXP",
			"PMI_GAP", "Unemployment", "VIX", "SPX_RET_1M",
			"CREDIT_SPREAD", "Confidence",
		},
		ColumnRename: map[string]string{
			"Inflation (expectation)": "INFLATION_EXP",
			"PMI Gap":                 "PMI_GAP",
			"Volatilité":              "VIX",
			"S&P500":                  "SPX_RET_1M",
			"Credit Spread":           "CREDIT_SPREAD",
		},
		FfillMaxGap:   2,
		DropInitialNA: true,

		SlopeLongColumn:  "US10Y",
		SlopeShortColumn: "US2Y",
		SlopeColumn:      "YC_SLOPE",

		ZScoreWindow:     60,
		ZScoreMinPeriods: 24,
		ZScoreColumns: []string{
			"US10Y", "US2Y", "HY_OAS", "IG_OAS", "INFLATION_EXP",
			"PMI_GAP", "Unemployment", "VIX", "CREDIT_SPREAD",
			"Confidence", "YC_SLOPE",
		},

		DiffColumns: []string{
			"US10Y", "HY_OAS", "INFLATION_EXP", "PMI_GAP",
			"Unemployment", "VIX", "Confidence",
		},
		DiffPeriods: []int{1, 6},

		SignFlipColumns: []string{"Unemployment_Z"},

		ReturnColumn:    "SPX_RET_1M",
		CumReturnColumn: "SPX_CUM",
		DrawdownColumn:  "SPX_DD_12M",
		DrawdownWindow:  12,
	}
}
