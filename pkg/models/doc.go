// Package models holds typed views of submitted drafts for the builtin flows.
package models
