// Package ws streams entry-at-a-time cleanup and full-text lookups over a
// WebSocket, for clients importing a library one record at a time.
//
// Message Types (Client → Server):
//   - cleanup: run a preset or job list over one entry
//   - fulltext: look up a document link for one entry
//   - ping: keep-alive ping
//
// Message Types (Server → Client):
//   - system: connection established
//   - cleaned: the cleaned entry and its field changes
//   - fulltext: lookup result, with url when found
//   - pong: ping reply
//   - error: the message could not be served; the connection stays open
//
// Example Usage:
//
//	handler := ws.NewHandler(apiHandlers, logger)
//	handler.Register(router)
package ws
