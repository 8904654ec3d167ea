// Package fststore persists serialized transducers in a SQLite
// database, one named blob per transducer. It is a thin layer over the
// fst package's binary format: Save runs fst.Write into a blob, Load
// runs fst.Read back through a caller-supplied registry, so every
// representation the registry knows round-trips.
//
// A Store wraps one database handle and is safe for concurrent use;
// SQLite serializes the writes. The database lives in a file; the
// connection pool makes ":memory:" databases unreliable here.
package fststore
