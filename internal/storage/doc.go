// Package storage provides JSON-based persistence for the club registry.
//
// The registry file is a pretty-printed JSON array of club records in
// registry order (the clubes.json format read by the map front-end). It is
// loaded wholesale at start and written wholesale; writes go to a temporary
// file in the same directory that is then renamed over the target, so an
// interrupted write never leaves a truncated registry behind. Non-ASCII text
// is written as UTF-8, not escaped.
package storage
