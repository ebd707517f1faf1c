/*
Package abi translates between wallet messages and Ethereum ABI call data.

A call is a 4 byte method selector followed by the arguments, each one a
32 byte word. The selector is the beginning of the keccak256 hash of the
method signature, for example "withdraw(address)". Wallet errors are
encoded as the selector of their custom error signature, events as a topic
and data words.
*/
package abi
