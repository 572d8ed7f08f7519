/*
Package roles implements role based access control for the fee pipeline.

A role is a name, for example "treasury-admin", assigned to any number of
addresses. Every mutating operation of the pipeline starts with an explicit
authorization check: the Authorizer resolves the transaction signers and
allows the call when any of them holds the required role.

Roles are assigned in genesis and later granted or revoked by a holder of
the "admin" role.
*/
package roles
