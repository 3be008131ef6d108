// Package dataset loads, trims, and writes two-column (X,Y) measurement
// data such as spectroscopy or diffraction curves.
//
// Input files are delimited numeric text with optional '#' comments. The
// caller selects which columns carry X and Y. Output writers produce the
// corrected three-column format and the full four-column report used by
// the baseline subtraction pipeline.
package dataset
