// Package calculator is the financial engine behind the assistant: interest,
// financing, SAC/PRICE schedules, inflation, rule of 72, retirement sizing,
// NPV/IRR and investment comparison.
//
// Every function is pure and safe for concurrent use. Rates are percentages
// (5 means 5%). Monetary outputs are rounded half away from zero to cents as
// the last step of each calculation; intermediate math keeps full float64
// precision.
package calculator
