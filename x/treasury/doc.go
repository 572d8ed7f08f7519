/*
Package treasury accumulates tokens and distributes them to weighted
recipients.

The treasury keeps a tracked balance for every supported token. Tokens are
received from any caller, typically the fee collector. A distribution pays
each active recipient its allocation of the tracked balance, in
registration order:

	share = balance * allocationBps / 10000

Shares are rounded down. Whatever is not paid out, because allocations sum
to less than 100% or because of rounding, stays in the tracked balance and
is part of the next distribution. Nothing is created or lost.

A distribution is started manually by a holder of the distributor role, or
automatically when a receive makes the balance reach the configured
threshold. Both are subject to a per token cooldown.

Tokens held by the treasury account but not tracked, for example sent
directly to it, can be recovered by an administrator.
*/
package treasury
