// Package warehouse reads the CWD Data Warehouse export formats (a params
// JSON document plus NDJSON record streams for areas, demography, and
// samples) and writes the warehouse-facing artifacts: the attachments
// manifest and the HTML-fragment report.
//
// Decoding is strict: these files are the data contract with the warehouse,
// so a malformed line is an error rather than a skip.
package warehouse
