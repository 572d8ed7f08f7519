/*
Package identity is a minimal identity registry. It stores a verification
level for an address and answers the verification level queries of the fee
calculator. Level 0 means no discount eligibility and is the level of every
unknown address.

Scoring identities is out of scope. Levels are assigned by holders of the
"identity-registrar" role.
*/
package identity
