// Package mirrorkit post-processes a mirrored website tree. It
// normalizes links, renames files and pretty-prints markup. At its core
// it finds near-duplicate blocks repeated across page files and factors
// them into shared include artifacts referenced from the pages that
// contained them.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g. goquery/,
// difflib/, sqlite/), with the pipeline itself in refactor/ and the
// simple tree transforms in transform/.
package mirrorkit
