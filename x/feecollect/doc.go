/*
Package feecollect charges operation fees and forwards them downstream.

A caller holding the fee collector role (typically the account of an asset
pool) calls Collect with the gross amount of an operation. The fee is
computed by the fee calculator, pulled from the caller with the ledger
allowance mechanism into the collector account and forwarded right away.

In the simple mode the whole fee goes to the treasury. When a reward pool
is configured and the treasury share is lower than 100%, the fee is split:

	treasuryAmount = fee * treasuryShareBps / 10000
	rewardAmount   = fee - treasuryAmount

Computing the reward amount by subtraction keeps the rounding remainder.
*/
package feecollect
