//go:build fieldsim_debug

package topology

// debugInvariants makes every mutation re-validate the adjacency and panic on
// a violation. Build or test with -tags fieldsim_debug.
const debugInvariants = true
