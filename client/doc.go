/*
Package client is a Go client for the report mapper HTTP API.

The client asserts the configured user identity on every request through the
same gateway headers the server trusts in production, which makes it suitable
for service-to-service calls behind the gateway and for integration tests.
*/
package client
