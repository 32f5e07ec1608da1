package booking

// TotalCost computes the cost of a stay: nightly price times the
// number of nights.  Prices are integers in the smallest currency
// unit; no taxes, fees or discounts apply.
func TotalCost(nightlyPrice int64, nights int) int64 {
	return nightlyPrice * int64(nights)
}
