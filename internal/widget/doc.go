// Package widget produces the compact payload read by companion surfaces
// (home-screen widgets, watch faces) that show what is urgent right now.
//
// A Digest is encoded as CBOR with Core Deterministic Encoding: sorted map
// keys and smallest integer encodings, so identical task lists always
// produce identical bytes and consumers can skip redraws by comparing
// payloads. Buckets and colours travel as text strings.
package widget
