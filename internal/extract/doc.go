// Package extract implements the download-and-normalize pipeline: probe
// metadata, derive a safe filename stem, invoke the external extractor, and
// reconcile the produced file against the expected path. Heterogeneous
// failure modes are mapped into the uniform ExtractionResult record; nothing
// in this package panics or lets an error escape as a fault.
package extract
