// Package security is the identity and audit collaborator of the memory
// manager. It supplies the current principal consulted by the region
// registry's ownership checks, and the event/violation log that every
// allocation, free, and rejection funnels through.
//
// Password hashing uses a djb2-style rolling hash. It is intentionally
// simple and NOT cryptographically secure; the system is a demonstration
// kernel and makes no stronger claim.
package security
