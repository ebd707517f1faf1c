/*
Package ledger keeps the balances of all accounts and moves value between
them.

Value attached to a transaction is taken from the main signer by the
ValueDecorator before the message handler runs. Only messages marked as
Payable accept a non-zero value.
*/
package ledger
