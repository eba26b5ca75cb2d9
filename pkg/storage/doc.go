// Package storage abstracts the location bundle files are written to and
// read back from.
//
// # Sources
//
// A [Source] can only probe names it is given; it never lists its contents.
// This matches a browser download folder served over HTTP, where the reader
// knows the naming convention but cannot enumerate files.
//
//   - [DirSource]: reads from an [fs.FS], usually a local directory
//   - [HTTPSource]: GETs files below a base URL
//
// Both report absence as [ErrNotFound]. [Open] picks the implementation from
// a location string:
//
//	src, err := storage.Open("http://localhost:5173/downloads", client)
//	src, err := storage.Open("/home/me/Downloads", nil)
//
// # Sinks
//
// A [Sink] persists a named file. [DirSink] writes atomically and durably
// through renameio. With dedupe enabled it behaves like a download manager:
// saving an existing name writes the next free duplicate instead, using the
// suffix convention of the bundle package.
package storage
