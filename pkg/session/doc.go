/*
Package session implements session management for hosts running many wizards.

A Manager serializes every operation on one session ID with a per-session
mutex, so concurrent requests for the same session (double-clicked Next,
two browser tabs) are applied one after the other. Locks are reference
counted and dropped once no goroutine holds or waits on them.
*/
package session
