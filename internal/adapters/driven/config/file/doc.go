// Package file provides the TOML-backed configuration store.
//
// Settings live in config.toml under the halda home directory
// (~/.halda unless overridden). Keys are addressed with dot notation,
// so "serper.api_key" reads api_key from the [serper] table.
package file
