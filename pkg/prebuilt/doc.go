// Package prebuilt provides ready-made operator transforms for common
// elementwise steps such as identity, scaling, and offsetting, plus a
// registry for graph builders that wire transforms up by name. Real
// model converters supply their own transforms; these cover demos,
// tests, and simple hand-built pipelines.
package prebuilt
