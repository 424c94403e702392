// Package tasks runs long catalog operations with real-time progress reporting.
//
// # Export
//
// [Exporter.Export] writes an event collection to disk in one or more formats
// (csv, markdown, txt, json) and, when asked, downloads each event's cover
// image.
//
// Image downloads run on a bounded worker pool. Each download waits on a shared
// [rate.Limiter] so the image host is not flooded. A failed download is recorded
// in the result and never aborts the export.
//
// [ExportCatalog] fetches the catalog, applies a [catalog.FilterState] and then
// exports the visible events.
//
// # Progress Reporting
//
// Operations accept a send-only channel of [ProgressUpdate]. Updates use select
// with default so a slow or absent reader never blocks the work.
//
// A manifest (export_manifest.json) summarising files and image outcomes is
// written last.
package tasks
