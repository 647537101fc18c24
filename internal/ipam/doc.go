// Package ipam hands out IPv4 interface addresses for the links of a
// topology.
//
// The address pool is cut into equally sized subnets. Every link gets a
// fresh subnet, and each addressed endpoint of the link gets the next host
// address of that subnet. Subnets already used by a joined session can be
// reserved so they are never handed out locally.
package ipam
