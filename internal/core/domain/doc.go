// Package domain defines the core business entities for docingest.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - TextUnit: One retrievable, tagged piece of extracted text
//   - Page: One page of a paged document with its layout geometry
//   - PageClassifier: The native-text-or-OCR decision for a page
//   - TenantScope / PredicateFilter: Tenant-isolated store scoping
//   - RawTextBlock: A reader strategy's output before unit creation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend
// on domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, google/uuid (unit identity)
//   - Cannot Import: Any internal/ package, any adapter dependency
package domain
