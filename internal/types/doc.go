/*
Package types defines the data model shared by resto's packages.

# Request Types

HttpRequest:
  - The draft edited in the TUI (method, URL, headers, query, body)
  - Built from curl commands by the converter package
  - Serialized to session.json and to the history database

HttpMethod:
  - GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS
  - Next/Prev cycle in that order, wrapping around

# Response Types

RequestResult:
  - Status, headers, body and cookies of an executed request
  - Timing and size information
  - Transport failures are carried in Error, not returned as Go errors

HistoryEntry:
  - One persisted request/response pair
*/
package types
