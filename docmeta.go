// Package docmeta extracts public metadata from document landing pages on a
// third-party content platform and tracks the status of out-of-band tasks.
//
// The landing page HTML is fetched once and a set of ordered fallback rules
// turns it into a best-effort Metadata record. The protected document body is
// never fetched.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, redis/, gin/).
package docmeta
