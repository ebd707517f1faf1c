/*
Package eventlog persists the events emitted by successfully delivered
messages. The log is append only. Every record gets the next sequence
number as its key and a tag, so that clients can subscribe to new events
through tendermint.
*/
package eventlog
