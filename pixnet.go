// Package pixnet provides a server-side implementation of the PIXNET
// graphical application protocol: a pixel-raster page (the PXNT container
// format), a category map that attaches clickable/navigable/draggable
// behavior to regions of a page, and a TCP wire protocol that streams
// rendered frames to a client and carries its input back.
//
// # Package Structure
//
// This package holds a root-level overview only; the protocol layers live
// in their own packages so each can be imported independently:
//
//   - wireio: endian-aware binary primitives shared by the PXNT and wire
//     frame codecs, plus the CRC-32 checksum both use for integrity.
//   - page: the in-memory Page model (pixel buffer, category map,
//     category definitions, metadata) both codecs materialize.
//   - pxnt: the PXNT container codec, for reading and writing .pxnt files.
//   - frame: the wire frame codec — PIXHND/PIXACK/PIXNET/PIXEVT/PIXINP/
//     PIXSCR/PIXDRG/PIXPNG/PIXPOG/PIXERR/PIXBYE.
//   - session: the per-connection protocol state machine (handshake,
//     keepalive, sequencing, session_id tolerance).
//   - category: the category-map interpreter, dispatching pointer events
//     to the nine behavior types a CategoryDef can declare.
//   - server: the TCP dispatcher that wires the above into a running
//     service.
//   - compress: the pluggable section compression codecs (None, Zlib,
//     LZ4) PXNT sections and compressed render frames use.
//   - format: small closed enumerations shared across the above.
//   - errs: the two closed error-code enumerations (WireCode, PxntCode)
//     peers exchange on failure.
//
// # Basic Usage
//
// Serving pages to connecting clients:
//
//	srv, err := server.New(server.WithAddr(":7621"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv.SetPage(myPage)
//	log.Fatal(srv.ListenAndServe(context.Background()))
//
// Reading a PXNT file from disk:
//
//	data, _ := os.ReadFile("home.pxnt")
//	p, err := pxnt.NewReader().Read(data)
package pixnet
