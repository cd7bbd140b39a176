package presskit

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// the default stylesheet copied into every build output.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
