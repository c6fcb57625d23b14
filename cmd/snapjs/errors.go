package main

import "errors"

// Sentinel errors for command operations
var (
	ErrFileNeedsRewrite    = errors.New("file would be rewritten")
	ErrRewriteErrors       = errors.New("some files could not be rewritten")
	ErrNotWrapped          = errors.New("snippet has no top-level await to wrap")
	ErrWriteRequiresFile   = errors.New("--write requires an input file")
	ErrDirectoryNeedsWrite = errors.New("directory input requires --write, --check or --diff")
	ErrOutputWithDirectory = errors.New("--output cannot be used with a directory")
)
