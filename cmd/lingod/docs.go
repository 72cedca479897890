package main

// Swagger annotations for the lingod HTTP API. docs/ is generated from them
// with `swag init -g cmd/lingod/docs.go`.
//
// @title           lingod API
// @version         1.0
// @description     Conversation orchestration over on-device language detection, summarization and translation.
//
// @contact.name   lingod maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @tag.name         status
// @tag.description  Feature availability, language pairs and model downloads.
// @tag.name         messages
// @tag.description  Conversation log and per-message summary and translation.
// @tag.name         events
// @tag.description  Server-sent event stream.
//
// @BasePath  /
// @schemes   http
