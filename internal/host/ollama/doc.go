// Package ollama serves the summarizer and translator namespaces from a
// local Ollama daemon. A model that is not installed reports
// "after-download"; creating a session pulls it and streams progress to the
// session monitor.
package ollama
