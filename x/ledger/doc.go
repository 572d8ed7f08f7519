/*
Package ledger defines a simple fungible token ledger. It keeps a balance
per (token, owner) pair and an allowance per (token, owner, spender) triple
and implements transfer, transferFrom, balanceOf and totalSupply.

There is no logic in the tokens, except that no balance may go below zero
and no spender may move more than it was approved for. The ledger exists so
that the fee pipeline can be exercised end to end. It is not meant to be a
production token implementation.

A receive hook can be registered for an address when wiring the
application. The hook is called after every credit of that address, which
models a token recipient executing code when it is paid.
*/
package ledger
