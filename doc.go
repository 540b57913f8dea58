// Package pveb implements a persistent (immutable, structurally-shared)
// van Emde Boas tree over a fixed integer universe [lb, ub].
//
// Every mutating operation returns a new *Tree; the receiver is left
// untouched and remains safe to read or build further trees from,
// concurrently, without locking. Point queries and ordered traversal
// run in expected O(log log U) time where U = ub - lb + 1.
package pveb
