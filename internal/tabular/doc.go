// Package tabular reads and writes the header-plus-rows tables exchanged with
// spreadsheets: quiz exports come in as CSV or XLSX and masters go out the
// same way. Format is chosen by file extension.
package tabular
