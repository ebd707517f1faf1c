/*
Package wallet implements a custodial time-lock.

A single pool of value is held on behalf of one owner. The owner is set once,
by the first caller of init. Anyone can deposit. Only the owner can withdraw,
only after the unlock time has passed, and always the whole pool at once. The
owner can move the unlock time further into the future, but never back.

The pool is a ledger account at PoolAddress. Its balance is never cached,
it is read from the ledger every time it is needed.
*/
package wallet
