/*
Package x contains the extensions the time-lock application is built from.

Extensions implement common functionality (Handler, Decorator,
Initializer, etc.) and are combined together in cmd/timelockd/app.

This package itself only defines the Authenticator abstraction that
lets handlers learn who signed a transaction without depending on a
particular signature scheme.
*/
package x
