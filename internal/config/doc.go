// Package config handles configuration loading for commerce-gateway.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults. The resulting Config
// struct is built once at process start and passed by reference into the
// auth, store, and server layers; handlers never read the environment.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${COMMERCE_JWT_SECRET}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	auth:
//	  token_ttl: "1h"
//
// Supported units: ns, us, ms, s, m, h
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8000"   # MCP endpoint, REST API and metrics
//
// Database:
//
//	database:
//	  path: "/var/lib/commerce/gateway.db"
//
// Authentication:
//
//	auth:
//	  jwt_secret: "${COMMERCE_JWT_SECRET}"  # Required
//	  token_ttl: "1h"                       # Access token lifetime
//
// Demo data seeding:
//
//	seed:
//	  enabled: true
//	  path: "./seed.toml"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load("/etc/commerce/gateway.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
