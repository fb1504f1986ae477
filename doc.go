// Package ebustl decodes ETSI EN 300 706 teletext packet streams into
// EBU Tech 3264-E (EBU-STL) subtitle files, and parses EBU-STL files into
// structured, styled caption records.
//
// The two directions are independent: Extractor consumes raw teletext
// packets and produces STL bytes, Reader consumes STL bytes and produces
// Captions. Neither owns file I/O, process invocation, or rendering —
// those are the caller's concern.
package ebustl
