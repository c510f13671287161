// Chatrelay is a unified gateway over unreliable free chat-completion
// providers.
//
// It tracks per-provider health with TTL-cached probes, classifies
// backend failures, and exposes the same JSON surface over HTTP and the
// command line:
//
//	# Start the HTTP server
//	chatrelay serve
//
//	# Start with custom configuration and hot reload
//	chatrelay serve --config /etc/chatrelay/config.yaml --watch
//
//	# List providers with health state
//	chatrelay providers
//
//	# Probe a single provider, bypassing the cache
//	chatrelay test bing
//
//	# Send a message
//	chatrelay chat "hello" --provider bing --model gpt-3.5-turbo
//
//	# Inspect the probe audit log
//	chatrelay history --provider bing --limit 20
package main

func main() {
	Execute()
}
