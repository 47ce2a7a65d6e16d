// Package collab implements the live synchronization channel: the JSON patch
// wire format, the outbound sink that mirrors local edits to the connected
// peer, and the websocket endpoint that receives the peer's edits.
//
// A patch travels as one websocket text frame:
//
//	{"text":"a","start":4,"end":5}
//
// Empty text means a one-character deletion at start; anything else is an
// insertion of text at start. Outbound patches always carry end = start+1.
//
// Only one peer is served at a time. A new connection takes over the
// outbound sink; older connections keep delivering inbound patches until
// they close.
package collab
