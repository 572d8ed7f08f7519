/*
Package rewards divides time into cycles and lets weighted participants
claim the tokens accumulated in the reward pool.

A cycle is open until its end time passes. A holder of the distributor
role then closes it, which marks it distributed and opens the next cycle.
Every active participant may claim once per closed cycle and token.

Two claim modes are supported. In the live mode a claim pays

	balance * sharesBps / 10000

of the pool balance at claim time, so the payout depends on the claims
made before. In the snapshot mode the pool of a cycle and token is frozen
at the first claim against it and every participant receives its share of
that frozen amount. Only the part allocated to the active shares is
reserved. Freezing the pool of a later cycle releases whatever the earlier
pools of the same token still reserve, so funds never claimed roll over
the same way they do in the live mode.
*/
package rewards
