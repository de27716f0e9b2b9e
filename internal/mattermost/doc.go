// Package mattermost is a minimal client for the Mattermost REST API (v4),
// covering exactly the calls the tool needs: login, user lookup by email,
// direct-channel creation, and posting.
//
// The client never persists the session token; it is obtained per
// invocation and passed explicitly to each call.
package mattermost
