// Package resolve finds the most recently exported bundle in a storage
// location that can only be probed by name.
//
// # Algorithm
//
// Newer exports of the same file receive higher duplicate numbers, so the
// [Resolver] scans versions from [Options.MaxVersion] down to 0. For each
// version it fetches the three bundle files concurrently and classifies the
// attempt as a [Candidate]:
//
//   - [Complete]: all three files exist and decode
//   - [Missing]: at least one file could not be fetched
//   - [Malformed]: all three were fetched but at least one does not decode
//
// The scan stops at the first Complete candidate. Missing and Malformed
// versions are skipped alike; a bundle is never assembled from files of
// different versions. When no version is complete, [Resolver.Resolve]
// returns a nil result and a nil error.
//
// Versions are probed strictly one after another. Each probe runs under its
// own timeout ([Options.ProbeTimeout]) so a hung fetch only costs that
// version.
//
// # Usage
//
//	r, err := resolve.New(storage.NewDirSource("Downloads"), resolve.DefaultOptions())
//	res, err := r.Resolve(ctx)
//	if res == nil {
//	    // start from bundle.Empty()
//	}
package resolve
