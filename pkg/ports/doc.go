/*
Package ports defines the driven ports (interfaces) of the wizard engine.

These interfaces decouple the controller from whatever receives a finished
draft and from where parked sessions are kept.

# Key Interfaces

  - Submitter: receives the completed draft exactly once (the "onSubmit" hand-off).
  - SessionStore: keeps wizard snapshots between requests, in process memory.
*/
package ports
