// Package config provides configuration management for gameshelf.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port)
//   - Database: sqlite/MySQL connection details
//   - Storage: S3/MinIO credentials and bucket settings for the artwork mirror
//   - Catalog: BGG API endpoint and rate-limit policy
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
