// Package tabldoc extracts database table definitions from a public
// reference site. It discovers tables from an index page, parses each
// table's field list from its detail page, and writes one JSON document
// per table.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, fs/).
package tabldoc
