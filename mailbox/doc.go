// Package mailbox relays per-round messages between neighboring devices
// without any transport.
//
// Every receiver owns an inbox holding, per sender, the most recently sent
// payload. The relay is last-write-wins, not a queue:
//
//	Send(s, p)   - overwrite inbox[n][s] = p for every current neighbor n of s.
//	Receive(r)   - copy of inbox[r] restricted to current neighbors of r.
//	Prune()      - delete inbox[r][s] whenever s is no longer a neighbor of r.
//
// The neighbor relation is read live from a Neighborhood (normally a
// topology.Topology), so a topology refresh is visible immediately. Receive
// hides stale entries even before Prune runs; Prune bounds memory and stops a
// sender that briefly leaves and re-enters range from resurfacing old data.
//
// A Mailbox is not safe for concurrent use.
package mailbox
