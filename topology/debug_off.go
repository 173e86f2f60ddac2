//go:build !fieldsim_debug

package topology

// debugInvariants enables post-mutation validation; see debug_on.go.
const debugInvariants = false
