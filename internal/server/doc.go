// Package server serves the chat over HTTP. Clients open a websocket on
// /ws and send one text message per turn; every reply is a JSON object.
package server
