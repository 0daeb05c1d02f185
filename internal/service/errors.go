package service

import "errors"

// Sentinel errors for conditions that make an operation meaningless.
// Recoverable conditions (unpriced item, no supplier quote, insufficient
// forecast history) are resolved into fallback values at the lowest layer
// and never surface as errors.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrSubAssemblyNotFound = errors.New("sub-assembly not found")
	ErrTemplateNotFound    = errors.New("design template not found")
	ErrItemNotFound        = errors.New("catalog item not found")
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrUserNotFound        = errors.New("user not found")

	// ErrCyclicBOM is returned when a sub-assembly chain references itself
	// transitively. The data model cannot express a product-level cycle,
	// but nothing prevents a sub-assembly document from closing a loop, so
	// rollups track visited ids and fail fast instead of recursing forever.
	ErrCyclicBOM = errors.New("cyclic BOM reference")

	// ErrItemReferenced blocks catalog deletion while any BOM uses the item.
	ErrItemReferenced = errors.New("item is referenced by a bill of materials")

	// ErrForecastUnavailable is returned by the explicit forecast endpoint
	// when the history cannot support a regression. Inside cost resolution
	// the same condition silently falls back to the manual cost instead.
	ErrForecastUnavailable = errors.New("not enough history to forecast")
)
