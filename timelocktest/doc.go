/*
Package timelocktest provides deterministic fakes of the framework interfaces
for use in tests: authenticators, handlers, decorators, transactions and a
ledger whose transfers can be made to fail.
*/
package timelocktest
