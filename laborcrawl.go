// Package laborcrawl harvests structured facts (job title, monthly
// salary) from labor-dispute judgments published on the Taiwanese
// judicial records site. It drives a headless browser through the
// paginated search interface, locates the judgment body among candidate
// DOM fragments, sends it to a pluggable LLM extraction backend, and
// appends validated records to a durable CSV table with crash-safe,
// resume-from-file semantics.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., rod/,
// gemini/, sqlite/).
package laborcrawl
