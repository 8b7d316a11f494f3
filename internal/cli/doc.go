// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the ragchat command line.
//
// Commands:
//
//	ragchat                 full-screen chat (default)
//	ragchat ask QUESTION    one question, answer on stdout
//	ragchat chat            line-mode chat with input history
//	ragchat stub            development answer service
//	ragchat config show     print the effective configuration
//	ragchat config path     print the config file location
//	ragchat config init     write a default config file
//	ragchat version         print version information
//
// Global flags:
//
//	--config PATH      config file (default ~/.ragchat/config.toml)
//	--api-url URL      answer service origin, overrides [api] base_url
//	--log-level LEVEL  trace, debug, info, warn or error
//
// All front ends share model.Conversation, so a question is answered the
// same way whichever one asked it.
package cli
