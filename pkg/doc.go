// Package pkg provides the libraries behind layoutcfg.
//
// # Overview
//
// A layout bundle is three JSON files: an edit configuration, a view
// configuration and a node-position map. Browsers save repeated downloads of
// the same file as "name (2).json", "name (3).json" and so on, so the newest
// bundle has to be found by probing suffixes. The pkg directory is organized
// into three areas:
//
//  1. Domain: [bundle] (types, file names, codec), [export] (spaced saves)
//     and [resolve] (newest complete version)
//  2. Infrastructure: [storage] (sources and sinks), [cache], [httputil],
//     [config], [errors] and [observability]
//  3. Surfaces: [schema] (metadata schema loader), [server] (HTTP dev
//     server), [watch] (re-resolve on new downloads) and [preview] (SVG of
//     node positions)
//
// # Data Flow
//
//	edit, view, positions
//	         ↓
//	    [export] (encode all, then save with spacing)
//	         ↓
//	    [storage] Sink (downloads directory, "name (N).json" on collision)
//	         ↓
//	    [resolve] (probe versions 100..0, first complete triple wins)
//	         ↓
//	    Bundle
//
// # Quick Start
//
// Find the newest bundle in a downloads directory:
//
//	src := storage.NewDirSource("/home/me/Downloads")
//	r, err := resolve.New(src, resolve.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	res, err := r.Resolve(ctx)
//	if err != nil {
//	    return err
//	}
//	if res == nil {
//	    // no complete bundle
//	}
//
// [bundle]: github.com/matzehuels/layoutcfg/pkg/bundle
// [export]: github.com/matzehuels/layoutcfg/pkg/export
// [resolve]: github.com/matzehuels/layoutcfg/pkg/resolve
// [storage]: github.com/matzehuels/layoutcfg/pkg/storage
// [cache]: github.com/matzehuels/layoutcfg/pkg/cache
// [httputil]: github.com/matzehuels/layoutcfg/pkg/httputil
// [config]: github.com/matzehuels/layoutcfg/pkg/config
// [errors]: github.com/matzehuels/layoutcfg/pkg/errors
// [observability]: github.com/matzehuels/layoutcfg/pkg/observability
// [schema]: github.com/matzehuels/layoutcfg/pkg/schema
// [server]: github.com/matzehuels/layoutcfg/pkg/server
// [watch]: github.com/matzehuels/layoutcfg/pkg/watch
// [preview]: github.com/matzehuels/layoutcfg/pkg/preview
package pkg
