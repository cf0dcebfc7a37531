// Package money normalizes storefront price text into decimal amounts and
// formats amounts for display.
//
// Amounts are carried as shopspring decimals end to end. Rounding happens
// only in Formatter, never in arithmetic.
package money
