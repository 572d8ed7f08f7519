/*
Package feecalc computes the fee charged for a protocol operation.

Every operation type (for example "invest" or "divest") has an
OperationFee declaring whether the operation is enabled, its default
percentage and flat fee, and an optional ordered list of amount based
tiers. A percentage declared for an asset by an AssetOverride takes
precedence over both tiers and defaults and is charged without a flat fee.

When discounts are enabled in the package configuration, the verification
level of the payer is looked up in the identity registry and the matching
Discount reduces the resolved percentage:

	finalPct = basePct * (10000 - discountBps) / 10000
	fee      = min(amount, amount * finalPct / 10000 + flatFee)

Every computed fee is appended to the fee record audit table.
*/
package feecalc
