/*
Package slab provides allocation-aware generic containers and a raw binary
serialization framework for programs that need predictable memory layout and
explicit control over when data is duplicated, moved, or released.

The containers never free their elements implicitly. Every non-trivial
element type supplies a Traits value describing its lifecycle (clone,
release, hash, empty sentinel, footprint), and the containers call those
operations instead of relying on garbage collection to reclaim owned
resources such as file handles or off-heap buffers. Fundamental types get
ready-made traits where every operation is trivial.

Containers

Array is a contiguous growable sequence with explicit length and capacity
and a doubling growth policy. Set is a linear-probed open-addressing hash
table that marks vacancy with a per-type empty sentinel and deletes by
backward shifting, so it never accumulates tombstones. Map pairs the same
table with a parallel value array moved in lockstep. ArrayMap is a
linear-scan association array for maps small enough that hashing is not
worth its overhead; picking it over Map is a deliberate caller decision.

Serialization

Containers serialize recursively through io.Reader/io.Writer sinks as raw
native-endian bytes with length prefixes; MemoryStream is the growable
in-memory sink and *os.File the file-backed one. The binary format is only
portable between identically configured builds. Snapshots of serialized
containers can be persisted through a Persist implementation (in-memory,
filesystem, or S3), named by the blake2b hash of their content so identical
snapshots are stored once.

Concurrency

All structures are single-owner and unsynchronized. Sharing between
goroutines requires external mutual exclusion or an explicit deep Clone.
*/
package slab
