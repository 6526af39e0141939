// Package observability provides the jobnav event log and user
// notifications. Events are persisted as JSON Lines through zerolog into a
// rotated file; notifications go to the terminal or a Slack webhook.
package observability
