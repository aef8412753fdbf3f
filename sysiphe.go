// Package sysiphe discovers and verifies business contact email addresses
// for company records, starting from nothing but a registered legal or
// trading name. It guesses plausible domains from the name, verifies them
// through DNS mail routing and HTTP probes, harvests candidate addresses
// from likely contact pages (or from search results as a fallback), and
// scores candidates to pick the single best contact.
//
// This package contains domain types, pure domain logic, and capability
// interfaces following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, dns/, duckduckgo/).
package sysiphe
