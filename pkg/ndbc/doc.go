// Package ndbc implements queries to NDBC for historical standard
// meteorological buoy data. Data is requested per station and year (see
// HistoryQuery). A successful query returns a time series of observations
// with wave height, period, and direction; sentinel-coded missing values
// decode to nil. All times are UTC.
package ndbc
