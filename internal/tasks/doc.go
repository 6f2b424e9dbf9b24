// Package tasks orchestrates catalog operations with real-time progress reporting.
//
// # Core Operations
//
// The [CatalogEngine] exposes two operations:
//
//  1. [CatalogEngine.Load] : Initial page load
//     - Fetches the full film listing
//     - Refreshes the cart and bookmark mirrors from the server
//     - The three fetches are independent and run concurrently
//     - A failed listing fetch is fatal; failed collection refreshes are
//     reported in the result and the cached mirrors stay usable
//
//  2. [CatalogEngine.BulkExport] : Export every genre's listing to files
//     - Fetches each genre's films through a rate-limited producer
//     - Writes files through a bounded worker pool
//     - Generates a manifest file summarizing the run
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, and messages
// for display. Updates use select with default to prevent blocking.
package tasks
