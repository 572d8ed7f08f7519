/*
Package x contains the extensions of tollgate.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together in cmd/tollgate/app to construct the fee
pipeline application.

This package holds only the authentication interface shared by all
extensions. Each sub-package registers its message handlers on a router and
reads its genesis section through an Initializer.

Note that model and message types in exported code are prefixed by the
package, so follow standard go naming conventions and avoid stutter. Use eg.
`treasury.DistributeMsg` in place of `treasury.TreasuryDistributeMsg`.
*/
package x
