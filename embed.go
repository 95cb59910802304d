package blog

import "embed"

// EmbeddedAssets holds the stylesheet served at /public/style.css and
// copied into static exports.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
